package backend

import (
	"context"
	"testing"

	"tally/internal/core"
	"tally/internal/store"
)

func TestCreateBackendSeeds(t *testing.T) {
	for _, typ := range []BackendType{MemoryBackend, SQLiteBackend} {
		t.Run(typ.String(), func(t *testing.T) {
			f := NewFactory(nil)
			result, err := f.CreateBackend(context.Background(), Config{
				Type:        typ,
				SQLiteDSN:   ":memory:",
				IDGenerator: &store.SequenceGenerator{},
			})
			if err != nil {
				t.Fatalf("create backend: %v", err)
			}
			if result.Cleanup != nil {
				t.Cleanup(func() { result.Cleanup() })
			}

			txs, err := result.Transactions.List(context.Background())
			if err != nil {
				t.Fatalf("list transactions: %v", err)
			}
			if len(txs) != 4 {
				t.Fatalf("expected 4 seed transactions, got %d", len(txs))
			}

			m := core.Summarize(txs)
			if m.TotalRevenue.Cents < 250000 {
				t.Fatalf("seed revenue: %+v", m)
			}
			if m.TotalExpenses.Cents < 7500 {
				t.Fatalf("seed expenses: %+v", m)
			}

			apps, _ := result.Appointments.List(context.Background())
			if len(apps) != 3 {
				t.Fatalf("expected 3 seed appointments, got %d", len(apps))
			}
		})
	}
}

func TestCreateBackendRejectsUnknownType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateBackend(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
}
