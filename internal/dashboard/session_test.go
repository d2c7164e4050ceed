package dashboard

import (
	"testing"

	"tally/internal/core"
)

func TestDialogLifecycle(t *testing.T) {
	s := NewSession()

	if st, _ := s.Dialog(); st != DialogClosed {
		t.Fatalf("new session not closed: %v", st)
	}

	if err := s.OpenAddDialog(); err != nil {
		t.Fatalf("open add: %v", err)
	}
	if err := s.OpenAddDialog(); err != ErrDialogOpen {
		t.Fatalf("expected ErrDialogOpen, got %v", err)
	}
	if err := s.OpenEditDialog("id-1"); err != ErrDialogOpen {
		t.Fatalf("expected ErrDialogOpen, got %v", err)
	}

	if err := s.CloseDialog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.CloseDialog(); err != ErrDialogClosed {
		t.Fatalf("expected ErrDialogClosed, got %v", err)
	}

	if err := s.OpenEditDialog("id-1"); err != nil {
		t.Fatalf("open edit after close: %v", err)
	}
	st, id := s.Dialog()
	if st != DialogEdit || id != "id-1" {
		t.Fatalf("unexpected dialog state: %v %q", st, id)
	}
}

func TestDayListIndependentOfDialog(t *testing.T) {
	s := NewSession()
	d := core.NewDate(2025, 7, 10)

	if err := s.OpenDayList(d); err != nil {
		t.Fatalf("open day list: %v", err)
	}
	if err := s.OpenDayList(d); err != ErrDayListOpen {
		t.Fatalf("expected ErrDayListOpen, got %v", err)
	}

	// The day list can spawn the form dialog.
	if err := s.OpenAddDialog(); err != nil {
		t.Fatalf("open dialog with day list open: %v", err)
	}
	if err := s.CloseDialog(); err != nil {
		t.Fatalf("close dialog: %v", err)
	}

	day, open := s.DayList()
	if !open || !day.SameDay(d) {
		t.Fatalf("day list lost: %v %v", day, open)
	}

	s.SelectDay(d.AddDays(2))
	day, _ = s.DayList()
	if !day.SameDay(d.AddDays(2)) {
		t.Fatalf("select day did not move: %v", day)
	}

	s.CloseDayList()
	if _, open := s.DayList(); open {
		t.Fatalf("day list still open")
	}
}
