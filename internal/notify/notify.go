// Package notify carries change events out of the dashboard: user-facing
// toast copy plus enough entity data for downstream consumers such as the
// sheet mirror worker.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Status string

const (
	StatusAdded   Status = "added"
	StatusUpdated Status = "updated"
	StatusDeleted Status = "deleted"
)

type EntityKind string

const (
	EntityTransaction EntityKind = "transaction"
	EntityAppointment EntityKind = "appointment"
)

// Event describes one completed mutation.
type Event struct {
	Status      Status
	Entity      EntityKind
	ID          string
	Title       string
	Description string

	// Transaction payload, empty for appointments.
	TransactionType string
	Name            string
	AmountCents     int64
	Date            string
}

// Notifier receives events after a mutation commits. Implementations must
// not fail the mutation: errors are for the caller to log, never to surface.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// LogNotifier writes events to the structured log. It is the default when no
// message broker is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, e Event) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Dashboard event",
		"status", string(e.Status),
		"entity", string(e.Entity),
		"id", e.ID,
		"title", e.Title,
		"description", e.Description)
	return nil
}

// CaptureNotifier records events in memory for tests.
type CaptureNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *CaptureNotifier) Notify(_ context.Context, e Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *CaptureNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}
