package core

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	Revenue TransactionType = "revenue"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a recorded revenue or expense event.
	Transaction struct {
		ID     string
		Type   TransactionType
		Name   string
		Amount Money
		Date   Date
	}

	// Appointment is a scheduled calendar event. Time of day is not modeled.
	Appointment struct {
		ID    string
		Title string
		Date  Date
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrShortName     = errors.New("name too short")
	ErrEmptyDate     = errors.New("empty date")
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Revenue, Expense:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current day at day granularity.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// SameDay reports whether two dates fall on the same calendar day,
// ignoring time of day.
func (d Date) SameDay(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{Time: d.Time.AddDate(0, 0, days)}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if utf8.RuneCountInString(t.Name) < 2 {
		return ErrShortName
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return t.Date.Validate()
}

func (a Appointment) Validate() error {
	if utf8.RuneCountInString(a.Title) < 3 {
		return ErrShortName
	}
	return a.Date.Validate()
}
