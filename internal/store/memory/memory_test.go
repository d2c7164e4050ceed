package memory

import (
	"context"
	"testing"

	"tally/internal/core"
	"tally/internal/store"
)

func newTestStore() *Store {
	return New(&store.SequenceGenerator{})
}

func TestUpsertAssignsFreshID(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	tx, err := s.Transactions().Upsert(ctx, core.Transaction{
		Type: core.Revenue, Name: "Website Design",
		Amount: core.Money{Cents: 250000}, Date: core.NewDate(2025, 5, 1),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if tx.ID != "id-1" {
		t.Fatalf("unexpected id %q", tx.ID)
	}

	list, _ := s.Transactions().ListByType(ctx, core.Revenue)
	if len(list) != 1 || list[0].Name != "Website Design" || list[0].ID != "id-1" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	a, _ := s.Transactions().Upsert(ctx, core.Transaction{Type: core.Revenue, Name: "First", Amount: core.Money{Cents: 100}, Date: core.NewDate(2025, 1, 1)})
	b, _ := s.Transactions().Upsert(ctx, core.Transaction{Type: core.Expense, Name: "Second", Amount: core.Money{Cents: 200}, Date: core.NewDate(2025, 1, 2)})

	a.Name = "First (edited)"
	a.Amount = core.Money{Cents: 150}
	if _, err := s.Transactions().Upsert(ctx, a); err != nil {
		t.Fatalf("replace: %v", err)
	}

	list, _ := s.Transactions().List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	// Position and id preserved.
	if list[0].ID != a.ID || list[0].Name != "First (edited)" || list[0].Amount.Cents != 150 {
		t.Fatalf("unexpected first entry: %+v", list[0])
	}
	if list[1].ID != b.ID {
		t.Fatalf("second entry moved: %+v", list[1])
	}
}

func TestUpsertUnknownIDIsNotFound(t *testing.T) {
	s := newTestStore()
	_, err := s.Transactions().Upsert(context.Background(), core.Transaction{
		ID: "ghost", Type: core.Revenue, Name: "ok", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 1, 1),
	})
	if err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	tx, _ := s.Transactions().Upsert(ctx, core.Transaction{Type: core.Expense, Name: "Office Supplies", Amount: core.Money{Cents: 12000}, Date: core.NewDate(2025, 1, 1)})

	if err := s.Transactions().Delete(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Transactions().Delete(ctx, tx.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.Transactions().Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}

	list, _ := s.Transactions().List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %+v", list)
	}
}

func TestListByTypePreservesInsertionOrder(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	names := []string{"A1", "B1", "A2", "B2", "A3"}
	for i, n := range names {
		typ := core.Revenue
		if i%2 == 1 {
			typ = core.Expense
		}
		if _, err := s.Transactions().Upsert(ctx, core.Transaction{Type: typ, Name: n, Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 1, 1)}); err != nil {
			t.Fatalf("upsert %s: %v", n, err)
		}
	}

	rev, _ := s.Transactions().ListByType(ctx, core.Revenue)
	if len(rev) != 3 || rev[0].Name != "A1" || rev[1].Name != "A2" || rev[2].Name != "A3" {
		t.Fatalf("unexpected revenue order: %+v", rev)
	}
}

func TestAppointmentsListOnDate(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	d1 := core.NewDate(2025, 7, 10)
	d2 := core.NewDate(2025, 7, 12)

	app, _ := s.Appointments().Upsert(ctx, core.Appointment{Title: "Call", Date: d1})
	s.Appointments().Upsert(ctx, core.Appointment{Title: "Design Presentation", Date: d2})

	onD1, _ := s.Appointments().ListOnDate(ctx, d1)
	if len(onD1) != 1 || onD1[0].Title != "Call" {
		t.Fatalf("unexpected day list: %+v", onD1)
	}

	// Moving the appointment to another day removes it from the old day.
	app.Title = "Call (moved)"
	app.Date = d2
	if _, err := s.Appointments().Upsert(ctx, app); err != nil {
		t.Fatalf("move: %v", err)
	}
	onD1, _ = s.Appointments().ListOnDate(ctx, d1)
	if len(onD1) != 0 {
		t.Fatalf("old day still lists appointment: %+v", onD1)
	}
	onD2, _ := s.Appointments().ListOnDate(ctx, d2)
	if len(onD2) != 2 || onD2[1].Title != "Call (moved)" {
		t.Fatalf("unexpected new day list: %+v", onD2)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.Transactions().Upsert(ctx, core.Transaction{Type: core.Revenue, Name: "Original", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 1, 1)})

	list, _ := s.Transactions().List(ctx)
	list[0].Name = "Mutated"

	again, _ := s.Transactions().List(ctx)
	if again[0].Name != "Original" {
		t.Fatalf("store state leaked through list copy")
	}
}
