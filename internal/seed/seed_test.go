package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tally/internal/core"
	"tally/internal/store"
	"tally/internal/store/memory"
)

func TestDefaultDataset(t *testing.T) {
	today := core.NewDate(2025, 6, 15)
	ds := Default(today)

	if len(ds.Transactions) != 4 || len(ds.Appointments) != 3 {
		t.Fatalf("unexpected dataset sizes: %d txs, %d apps", len(ds.Transactions), len(ds.Appointments))
	}

	var revenue, expenses int64
	for _, tx := range ds.Transactions {
		if err := tx.Validate(); err != nil {
			t.Fatalf("seed transaction %q invalid: %v", tx.Name, err)
		}
		switch tx.Type {
		case core.Revenue:
			revenue += tx.Amount.Cents
		case core.Expense:
			expenses += tx.Amount.Cents
		}
	}
	if revenue < 250000 {
		t.Fatalf("seed revenue too small: %d", revenue)
	}
	if expenses < 7500 {
		t.Fatalf("seed expenses too small: %d", expenses)
	}

	if !ds.Appointments[0].Date.SameDay(today) {
		t.Fatalf("first appointment not today: %+v", ds.Appointments[0])
	}
}

func TestApplyAssignsFreshIDs(t *testing.T) {
	s := memory.New(&store.SequenceGenerator{})
	ds := Default(core.NewDate(2025, 6, 15))
	ds.Transactions[0].ID = "stale-id"

	if err := Apply(context.Background(), ds, s.Transactions(), s.Appointments()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	list, _ := s.Transactions().List(context.Background())
	if list[0].ID != "id-1" {
		t.Fatalf("stale id survived: %+v", list[0])
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{
		"transactions": [
			{"type": "revenue", "name": "Consulting", "amount": "1200.50", "days": -1},
			{"type": "expense", "name": "Hosting", "amount": "30", "date": "2025-06-01"}
		],
		"appointments": [
			{"title": "Quarterly Review", "days": 3}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	today := core.NewDate(2025, 6, 15)
	ds, err := Load(path, today)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Transactions) != 2 || len(ds.Appointments) != 1 {
		t.Fatalf("unexpected dataset: %+v", ds)
	}
	if ds.Transactions[0].Amount.Cents != 120050 {
		t.Fatalf("amount not parsed: %+v", ds.Transactions[0])
	}
	if !ds.Transactions[0].Date.SameDay(today.AddDays(-1)) {
		t.Fatalf("relative date wrong: %+v", ds.Transactions[0])
	}
	if !ds.Transactions[1].Date.SameDay(core.NewDate(2025, 6, 1)) {
		t.Fatalf("absolute date wrong: %+v", ds.Transactions[1])
	}
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{"transactions": [{"type": "revenue", "name": "x", "amount": "-5"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if _, err := Load(path, core.Today()); err == nil {
		t.Fatalf("expected validation error")
	}
}
