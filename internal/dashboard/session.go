package dashboard

import (
	"errors"
	"sync"

	"tally/internal/core"
)

type DialogState string

const (
	DialogClosed DialogState = "closed"
	DialogAdd    DialogState = "add"
	DialogEdit   DialogState = "edit"
)

var (
	ErrDialogOpen   = errors.New("dialog already open")
	ErrDialogClosed = errors.New("dialog not open")
	ErrDayListOpen  = errors.New("day list already open")
)

// Session tracks the UI state machine for one browser session: the add/edit
// form dialog and the calendar day list. The two run independently; the day
// list may spawn the dialog. Submit and Cancel are the only ways out of an
// open dialog.
type Session struct {
	mu sync.Mutex

	dialog  DialogState
	editID  string
	dayOpen bool
	day     core.Date
}

func NewSession() *Session {
	return &Session{dialog: DialogClosed}
}

func (s *Session) OpenAddDialog() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != DialogClosed {
		return ErrDialogOpen
	}
	s.dialog = DialogAdd
	s.editID = ""
	return nil
}

func (s *Session) OpenEditDialog(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog != DialogClosed {
		return ErrDialogOpen
	}
	s.dialog = DialogEdit
	s.editID = id
	return nil
}

// CloseDialog ends the dialog on submit or cancel.
func (s *Session) CloseDialog() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == DialogClosed {
		return ErrDialogClosed
	}
	s.dialog = DialogClosed
	s.editID = ""
	return nil
}

func (s *Session) Dialog() (DialogState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialog, s.editID
}

func (s *Session) OpenDayList(d core.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dayOpen {
		return ErrDayListOpen
	}
	s.dayOpen = true
	s.day = d
	return nil
}

// SelectDay moves an open day list to another date.
func (s *Session) SelectDay(d core.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayOpen = true
	s.day = d
}

func (s *Session) CloseDayList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayOpen = false
	s.day = core.Date{}
}

func (s *Session) DayList() (core.Date, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day, s.dayOpen
}
