// Package worker bridges AMQP entity events to the Google Sheets audit
// mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/mirror/google"
)

// SheetAppender is the slice of the mirror client the worker needs.
type SheetAppender interface {
	AppendRow(ctx context.Context, row google.Row) error
}

type MirrorWorker struct {
	sheets SheetAppender
}

func NewMirrorWorker(sheets SheetAppender) *MirrorWorker {
	return &MirrorWorker{sheets: sheets}
}

// HandleEntityEvent appends one event to the sheet. Errors propagate so the
// consumer can nack and requeue.
func (w *MirrorWorker) HandleEntityEvent(ctx context.Context, msg *amqp.EntityEventMessage) error {
	row := google.Row{
		Timestamp:       msg.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		Status:          msg.Status,
		Entity:          msg.Entity,
		ID:              msg.ID,
		Name:            msg.Name,
		TransactionType: msg.TransactionType,
		AmountCents:     msg.AmountCents,
		Date:            msg.Date,
	}

	if err := w.sheets.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("mirror entity event: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored entity event",
		"status", msg.Status,
		"entity", msg.Entity,
		"id", msg.ID)
	return nil
}
