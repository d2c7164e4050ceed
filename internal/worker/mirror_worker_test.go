package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/amqp"
	"tally/internal/mirror/google"
	"tally/internal/notify"
)

type captureAppender struct {
	rows []google.Row
	err  error
}

func (c *captureAppender) AppendRow(_ context.Context, row google.Row) error {
	if c.err != nil {
		return c.err
	}
	c.rows = append(c.rows, row)
	return nil
}

func TestHandleEntityEvent(t *testing.T) {
	sink := &captureAppender{}
	w := NewMirrorWorker(sink)

	msg := amqp.NewEntityEventMessage(notify.Event{
		Status:          notify.StatusAdded,
		Entity:          notify.EntityTransaction,
		ID:              "id-1",
		Name:            "Website Design",
		TransactionType: "revenue",
		AmountCents:     250000,
		Date:            "2025-06-01",
	})
	msg.Timestamp = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := w.HandleEntityEvent(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sink.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sink.rows))
	}
	row := sink.rows[0]
	if row.Status != "added" || row.Name != "Website Design" || row.AmountCents != 250000 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Timestamp != "2025-06-01 12:00:00" {
		t.Fatalf("unexpected timestamp %q", row.Timestamp)
	}
}

func TestHandleEntityEventPropagatesError(t *testing.T) {
	sink := &captureAppender{err: errors.New("quota exceeded")}
	w := NewMirrorWorker(sink)

	msg := amqp.NewEntityEventMessage(notify.Event{
		Status: notify.StatusDeleted,
		Entity: notify.EntityAppointment,
		ID:     "id-2",
	})
	if err := w.HandleEntityEvent(context.Background(), msg); err == nil {
		t.Fatalf("expected error to propagate for requeue")
	}
}
