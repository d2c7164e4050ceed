package core

import (
	"testing"
	"time"
)

func TestDateSameDay(t *testing.T) {
	cases := []struct {
		a, b Date
		same bool
	}{
		{NewDate(2025, 3, 14), NewDate(2025, 3, 14), true},
		{NewDate(2025, 3, 14), NewDate(2025, 3, 15), false},
		{NewDate(2025, 3, 14), NewDate(2024, 3, 14), false},
		// Time of day must not affect day equality.
		{Date{Time: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)},
			Date{Time: time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)}, true},
	}
	for i, tc := range cases {
		if got := tc.a.SameDay(tc.b); got != tc.same {
			t.Fatalf("case %d: SameDay=%v, want %v", i, got, tc.same)
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -500}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	if !Revenue.IsValid() || !Expense.IsValid() {
		t.Fatalf("known types must be valid")
	}
	if TransactionType("transfer").IsValid() {
		t.Fatalf("unknown type must be invalid")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:   Revenue,
		Name:   "Website Design",
		Amount: Money{Cents: 250000},
		Date:   NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "other", Name: "ok", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{Type: Revenue, Name: "x", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		// One character, two bytes: length is measured in characters.
		{Type: Revenue, Name: "é", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{Type: Revenue, Name: "ok", Amount: Money{Cents: 0}, Date: NewDate(2025, 1, 1)},
		{Type: Revenue, Name: "ok", Amount: Money{Cents: 1}, Date: Date{}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAppointmentValidate(t *testing.T) {
	if err := (Appointment{Title: "Call", Date: NewDate(2025, 1, 1)}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Appointment{Title: "no", Date: NewDate(2025, 1, 1)}).Validate(); err == nil {
		t.Fatalf("expected error for short title")
	}
	if err := (Appointment{Title: "日日", Date: NewDate(2025, 1, 1)}).Validate(); err == nil {
		t.Fatalf("expected error for two-character title")
	}
	if err := (Appointment{Title: "Call", Date: Date{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}
