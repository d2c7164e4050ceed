// Package seed loads the session's starting dataset. Entities are written
// through the store ports with empty IDs so every session gets fresh
// identifiers.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tally/internal/core"
	"tally/internal/store"
)

type Dataset struct {
	Transactions []core.Transaction
	Appointments []core.Appointment
}

// Default returns the built-in demo dataset, anchored to the given day.
func Default(today core.Date) Dataset {
	return Dataset{
		Transactions: []core.Transaction{
			{Type: core.Revenue, Name: "Website Design", Amount: core.Money{Cents: 250000}, Date: today},
			{Type: core.Expense, Name: "Software Subscription", Amount: core.Money{Cents: 7500}, Date: today.AddDays(-5)},
			{Type: core.Revenue, Name: "Logo Design", Amount: core.Money{Cents: 80000}, Date: today.AddDays(-2)},
			{Type: core.Expense, Name: "Office Supplies", Amount: core.Money{Cents: 12000}, Date: today.AddDays(-10)},
		},
		Appointments: []core.Appointment{
			{Title: "Client Meeting - Project Kickoff", Date: today},
			{Title: "Follow-up with Acme Corp", Date: today.AddDays(2)},
			{Title: "Design Presentation", Date: today.AddDays(5)},
		},
	}
}

// fileTransaction and fileAppointment are the on-disk seed format. Dates can
// be absolute ("2025-06-01") or relative to today via "days".
type (
	fileTransaction struct {
		Type   string `json:"type"`
		Name   string `json:"name"`
		Amount string `json:"amount"`
		Date   string `json:"date,omitempty"`
		Days   int    `json:"days,omitempty"`
	}

	fileAppointment struct {
		Title string `json:"title"`
		Date  string `json:"date,omitempty"`
		Days  int    `json:"days,omitempty"`
	}

	fileDataset struct {
		Transactions []fileTransaction `json:"transactions"`
		Appointments []fileAppointment `json:"appointments"`
	}
)

// Load reads a seed dataset from a JSON file.
func Load(path string, today core.Date) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}

	var fd fileDataset
	if err := json.Unmarshal(raw, &fd); err != nil {
		return Dataset{}, fmt.Errorf("parse seed file: %w", err)
	}

	var ds Dataset
	for i, ft := range fd.Transactions {
		date, err := resolveDate(ft.Date, ft.Days, today)
		if err != nil {
			return Dataset{}, fmt.Errorf("seed transaction %d: %w", i, err)
		}
		tx, fe := core.ValidateTransaction(core.TransactionInput{
			Type:   ft.Type,
			Name:   ft.Name,
			Amount: ft.Amount,
			Date:   date,
		})
		if fe != nil {
			return Dataset{}, fmt.Errorf("seed transaction %d: %w", i, fe)
		}
		ds.Transactions = append(ds.Transactions, tx)
	}
	for i, fa := range fd.Appointments {
		date, err := resolveDate(fa.Date, fa.Days, today)
		if err != nil {
			return Dataset{}, fmt.Errorf("seed appointment %d: %w", i, err)
		}
		app, fe := core.ValidateAppointment(core.AppointmentInput{
			Title: fa.Title,
			Date:  date,
		})
		if fe != nil {
			return Dataset{}, fmt.Errorf("seed appointment %d: %w", i, fe)
		}
		ds.Appointments = append(ds.Appointments, app)
	}
	return ds, nil
}

func resolveDate(abs string, days int, today core.Date) (core.Date, error) {
	if abs == "" {
		return today.AddDays(days), nil
	}
	t, err := time.ParseInLocation("2006-01-02", abs, time.UTC)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", abs, err)
	}
	return core.Date{Time: t}, nil
}

// Apply inserts the dataset through the store ports. IDs on the dataset are
// ignored; stores assign fresh ones.
func Apply(ctx context.Context, ds Dataset, txs store.TransactionStore, apps store.AppointmentStore) error {
	for _, t := range ds.Transactions {
		t.ID = ""
		if _, err := txs.Upsert(ctx, t); err != nil {
			return fmt.Errorf("seed transaction %q: %w", t.Name, err)
		}
	}
	for _, a := range ds.Appointments {
		a.ID = ""
		if _, err := apps.Upsert(ctx, a); err != nil {
			return fmt.Errorf("seed appointment %q: %w", a.Title, err)
		}
	}
	return nil
}
