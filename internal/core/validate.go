package core

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a form field name to a human-readable failure message.
// It implements error so validation results can flow through error returns,
// but validation never panics and never touches any store.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// TransactionInput is a candidate transaction as submitted by a form.
// Amount arrives as the raw string so coercion failures become field errors.
// An empty ID means "create"; a non-empty ID means "edit".
type TransactionInput struct {
	ID     string
	Type   string
	Name   string
	Amount string
	Date   Date
}

// AppointmentInput is a candidate appointment as submitted by a form.
type AppointmentInput struct {
	ID    string
	Title string
	Date  Date
}

// ValidateTransaction checks a candidate transaction and returns either the
// accepted normalized record or the per-field failures. The returned
// Transaction carries the input ID unchanged; id assignment is the store's job.
func ValidateTransaction(in TransactionInput) (Transaction, FieldErrors) {
	fe := FieldErrors{}

	typ := TransactionType(strings.TrimSpace(in.Type))
	if !typ.IsValid() {
		fe["type"] = "Type must be revenue or expense."
	}

	// Length rules count characters, not bytes.
	name := strings.TrimSpace(in.Name)
	if utf8.RuneCountInString(name) < 2 {
		fe["name"] = "Name must be at least 2 characters."
	}

	cents, err := ParseDecimalToCents(in.Amount)
	if err != nil {
		fe["amount"] = "Amount must be a positive number."
	}

	if err := in.Date.Validate(); err != nil {
		fe["date"] = "A date is required."
	}

	if len(fe) > 0 {
		return Transaction{}, fe
	}
	return Transaction{
		ID:     strings.TrimSpace(in.ID),
		Type:   typ,
		Name:   name,
		Amount: Money{Cents: cents},
		Date:   in.Date,
	}, nil
}

// ValidateAppointment checks a candidate appointment and returns either the
// accepted normalized record or the per-field failures.
func ValidateAppointment(in AppointmentInput) (Appointment, FieldErrors) {
	fe := FieldErrors{}

	title := strings.TrimSpace(in.Title)
	if utf8.RuneCountInString(title) < 3 {
		fe["title"] = "Title must be at least 3 characters."
	}

	if err := in.Date.Validate(); err != nil {
		fe["date"] = "A date is required."
	}

	if len(fe) > 0 {
		return Appointment{}, fe
	}
	return Appointment{
		ID:    strings.TrimSpace(in.ID),
		Title: title,
		Date:  in.Date,
	}, nil
}
