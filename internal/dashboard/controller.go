// Package dashboard orchestrates mutations over the entity stores and
// republishes derived state to the rendering layer.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/notify"
	"tally/internal/store"
)

// Controller is the single mutator of the stores. Handlers never touch the
// stores directly; they submit inputs here and re-render from Snapshot.
type Controller struct {
	transactions store.TransactionStore
	appointments store.AppointmentStore
	notifier     notify.Notifier
}

// Snapshot is the full state handed to the rendering layer after every
// mutation. Metrics are recomputed on each call, never cached.
type Snapshot struct {
	Transactions []core.Transaction
	Appointments []core.Appointment
	Metrics      core.Metrics
}

func NewController(txs store.TransactionStore, apps store.AppointmentStore, notifier notify.Notifier) *Controller {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Controller{
		transactions: txs,
		appointments: apps,
		notifier:     notifier,
	}
}

// SubmitTransaction validates the input and upserts it. Edits merge the
// submitted fields over the stored record, then the merged record is
// re-validated in full before anything is written.
func (c *Controller) SubmitTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	editing := in.ID != ""
	if editing {
		existing, err := c.findTransaction(ctx, in.ID)
		if err != nil {
			return core.Transaction{}, err
		}
		in = mergeTransactionInput(in, existing)
	}

	tx, fe := core.ValidateTransaction(in)
	if fe != nil {
		return core.Transaction{}, fe
	}

	stored, err := c.transactions.Upsert(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("upsert transaction: %w", err)
	}

	c.publish(ctx, transactionEvent(stored, statusFor(editing)))
	return stored, nil
}

// DeleteTransaction removes the transaction. Unknown IDs delete silently.
func (c *Controller) DeleteTransaction(ctx context.Context, id string) error {
	name := ""
	if existing, err := c.findTransaction(ctx, id); err == nil {
		name = existing.Name
	}

	if err := c.transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	c.publish(ctx, notify.Event{
		Status:      notify.StatusDeleted,
		Entity:      notify.EntityTransaction,
		ID:          id,
		Title:       "Transaction deleted",
		Description: deletedCopy(name),
		Name:        name,
	})
	return nil
}

// SubmitAppointment mirrors SubmitTransaction for appointments.
func (c *Controller) SubmitAppointment(ctx context.Context, in core.AppointmentInput) (core.Appointment, error) {
	editing := in.ID != ""
	if editing {
		existing, err := c.findAppointment(ctx, in.ID)
		if err != nil {
			return core.Appointment{}, err
		}
		in = mergeAppointmentInput(in, existing)
	}

	app, fe := core.ValidateAppointment(in)
	if fe != nil {
		return core.Appointment{}, fe
	}

	stored, err := c.appointments.Upsert(ctx, app)
	if err != nil {
		return core.Appointment{}, fmt.Errorf("upsert appointment: %w", err)
	}

	c.publish(ctx, appointmentEvent(stored, statusFor(editing)))
	return stored, nil
}

func (c *Controller) DeleteAppointment(ctx context.Context, id string) error {
	title := ""
	if existing, err := c.findAppointment(ctx, id); err == nil {
		title = existing.Title
	}

	if err := c.appointments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	c.publish(ctx, notify.Event{
		Status:      notify.StatusDeleted,
		Entity:      notify.EntityAppointment,
		ID:          id,
		Title:       "Appointment deleted",
		Description: deletedCopy(title),
		Name:        title,
	})
	return nil
}

// Snapshot reads the current state and recomputes metrics.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	txs, err := c.transactions.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list transactions: %w", err)
	}
	apps, err := c.appointments.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list appointments: %w", err)
	}
	return Snapshot{
		Transactions: txs,
		Appointments: apps,
		Metrics:      core.Summarize(txs),
	}, nil
}

// TransactionsByType lists one side of the ledger for the tabbed tables.
func (c *Controller) TransactionsByType(ctx context.Context, typ core.TransactionType) ([]core.Transaction, error) {
	return c.transactions.ListByType(ctx, typ)
}

// AppointmentsOn lists the appointments of one calendar day.
func (c *Controller) AppointmentsOn(ctx context.Context, d core.Date) ([]core.Appointment, error) {
	return c.appointments.ListOnDate(ctx, d)
}

// Transaction returns the stored transaction with the given ID, used to
// prefill the edit dialog. Returns store.ErrNotFound for unknown IDs.
func (c *Controller) Transaction(ctx context.Context, id string) (core.Transaction, error) {
	return c.findTransaction(ctx, id)
}

// Appointment returns the stored appointment with the given ID.
func (c *Controller) Appointment(ctx context.Context, id string) (core.Appointment, error) {
	return c.findAppointment(ctx, id)
}

func (c *Controller) findTransaction(ctx context.Context, id string) (core.Transaction, error) {
	txs, err := c.transactions.List(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("list transactions: %w", err)
	}
	for _, t := range txs {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, store.ErrNotFound
}

func (c *Controller) findAppointment(ctx context.Context, id string) (core.Appointment, error) {
	apps, err := c.appointments.List(ctx)
	if err != nil {
		return core.Appointment{}, fmt.Errorf("list appointments: %w", err)
	}
	for _, a := range apps {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Appointment{}, store.ErrNotFound
}

// publish sends the event without failing the mutation. The record is already
// committed by the time we get here.
func (c *Controller) publish(ctx context.Context, e notify.Event) {
	if err := c.notifier.Notify(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event",
			"status", string(e.Status),
			"entity", string(e.Entity),
			"id", e.ID,
			"error", err)
	}
}

func mergeTransactionInput(in core.TransactionInput, existing core.Transaction) core.TransactionInput {
	if in.Type == "" {
		in.Type = existing.Type.String()
	}
	if in.Name == "" {
		in.Name = existing.Name
	}
	if in.Amount == "" {
		in.Amount = formatCentsDecimal(existing.Amount.Cents)
	}
	if in.Date.IsZero() {
		in.Date = existing.Date
	}
	return in
}

func mergeAppointmentInput(in core.AppointmentInput, existing core.Appointment) core.AppointmentInput {
	if in.Title == "" {
		in.Title = existing.Title
	}
	if in.Date.IsZero() {
		in.Date = existing.Date
	}
	return in
}

func formatCentsDecimal(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func statusFor(editing bool) notify.Status {
	if editing {
		return notify.StatusUpdated
	}
	return notify.StatusAdded
}

func transactionEvent(t core.Transaction, status notify.Status) notify.Event {
	title := "Transaction added"
	if status == notify.StatusUpdated {
		title = "Transaction updated"
	}
	return notify.Event{
		Status:          status,
		Entity:          notify.EntityTransaction,
		ID:              t.ID,
		Title:           title,
		Description:     successCopy(status, t.Name),
		TransactionType: t.Type.String(),
		Name:            t.Name,
		AmountCents:     t.Amount.Cents,
		Date:            t.Date.Format("2006-01-02"),
	}
}

func appointmentEvent(a core.Appointment, status notify.Status) notify.Event {
	title := "Appointment added"
	if status == notify.StatusUpdated {
		title = "Appointment updated"
	}
	return notify.Event{
		Status:      status,
		Entity:      notify.EntityAppointment,
		ID:          a.ID,
		Title:       title,
		Description: successCopy(status, a.Title),
		Name:        a.Title,
		Date:        a.Date.Format("2006-01-02"),
	}
}

func successCopy(status notify.Status, name string) string {
	verb := "added"
	if status == notify.StatusUpdated {
		verb = "updated"
	}
	return fmt.Sprintf("Successfully %s %q.", verb, name)
}

func deletedCopy(name string) string {
	if name == "" {
		return "Successfully deleted."
	}
	return fmt.Sprintf("Successfully deleted %q.", name)
}
