// Package memory implements the store ports on plain mutex-guarded slices.
// This is the default backend: everything lives for one session and resets
// on restart.
package memory

import (
	"context"
	"sync"

	"tally/internal/core"
	"tally/internal/store"
)

type Store struct {
	mu           sync.Mutex
	gen          store.IDGenerator
	transactions []core.Transaction
	appointments []core.Appointment
}

var (
	_ store.TransactionStore = (*TransactionStore)(nil)
	_ store.AppointmentStore = (*AppointmentStore)(nil)
)

func New(gen store.IDGenerator) *Store {
	if gen == nil {
		gen = store.UUIDGenerator{}
	}
	return &Store{gen: gen}
}

// Transactions returns the transaction port backed by this store.
func (s *Store) Transactions() *TransactionStore {
	return &TransactionStore{s: s}
}

// Appointments returns the appointment port backed by this store.
func (s *Store) Appointments() *AppointmentStore {
	return &AppointmentStore{s: s}
}

type TransactionStore struct {
	s *Store
}

func (ts *TransactionStore) Upsert(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s := ts.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.gen.NewID()
		s.transactions = append(s.transactions, t)
		return t, nil
	}
	for i, existing := range s.transactions {
		if existing.ID == t.ID {
			s.transactions[i] = t
			return t, nil
		}
	}
	return core.Transaction{}, store.ErrNotFound
}

func (ts *TransactionStore) Delete(_ context.Context, id string) error {
	s := ts.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	// Unknown id: idempotent no-op.
	return nil
}

func (ts *TransactionStore) List(_ context.Context) ([]core.Transaction, error) {
	s := ts.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (ts *TransactionStore) ListByType(_ context.Context, typ core.TransactionType) ([]core.Transaction, error) {
	s := ts.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, t := range s.transactions {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out, nil
}

type AppointmentStore struct {
	s *Store
}

func (as *AppointmentStore) Upsert(_ context.Context, a core.Appointment) (core.Appointment, error) {
	s := as.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = s.gen.NewID()
		s.appointments = append(s.appointments, a)
		return a, nil
	}
	for i, existing := range s.appointments {
		if existing.ID == a.ID {
			s.appointments[i] = a
			return a, nil
		}
	}
	return core.Appointment{}, store.ErrNotFound
}

func (as *AppointmentStore) Delete(_ context.Context, id string) error {
	s := as.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.appointments {
		if a.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (as *AppointmentStore) List(_ context.Context) ([]core.Appointment, error) {
	s := as.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Appointment(nil), s.appointments...), nil
}

func (as *AppointmentStore) ListOnDate(_ context.Context, d core.Date) ([]core.Appointment, error) {
	s := as.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Appointment
	for _, a := range s.appointments {
		if a.Date.SameDay(d) {
			out = append(out, a)
		}
	}
	return out, nil
}
