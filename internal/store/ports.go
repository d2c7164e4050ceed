// Package store defines the ports for the dashboard's entity collections.
// Backends own the authoritative in-memory state for one session; the
// rendering layer only ever holds read copies.
package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"tally/internal/core"
)

// ErrNotFound is returned by Upsert when a non-empty ID does not match any
// stored record. The controller only ever replays IDs from prior store
// output, so reaching it means a programming error upstream.
var ErrNotFound = errors.New("entity not found")

type (
	// TransactionStore owns the transaction collection.
	TransactionStore interface {
		// Upsert appends the transaction when its ID is empty (assigning a
		// fresh unique ID) or replaces the stored record in place when the ID
		// matches. Insertion order is preserved either way. Returns the
		// stored entity.
		Upsert(ctx context.Context, t core.Transaction) (core.Transaction, error)

		// Delete removes the transaction with the given ID. Deleting an
		// unknown ID is a no-op.
		Delete(ctx context.Context, id string) error

		// List returns all transactions in insertion order.
		List(ctx context.Context) ([]core.Transaction, error)

		// ListByType returns the subsequence of transactions of the given
		// type, in insertion order.
		ListByType(ctx context.Context, typ core.TransactionType) ([]core.Transaction, error)
	}

	// AppointmentStore owns the appointment collection.
	AppointmentStore interface {
		Upsert(ctx context.Context, a core.Appointment) (core.Appointment, error)
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]core.Appointment, error)

		// ListOnDate returns appointments whose date falls on the same
		// calendar day as d, in insertion order. Time of day is ignored.
		ListOnDate(ctx context.Context, d core.Date) ([]core.Appointment, error)
	}

	// IDGenerator produces unique opaque entity identifiers. Injectable so
	// tests can supply deterministic IDs.
	IDGenerator interface {
		NewID() string
	}
)

// UUIDGenerator is the production IDGenerator, backed by random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator hands out "id-1", "id-2", ... for deterministic tests.
type SequenceGenerator struct {
	n int
}

func (g *SequenceGenerator) NewID() string {
	g.n++
	return "id-" + strconv.Itoa(g.n)
}
