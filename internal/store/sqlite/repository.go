// Package sqlite implements the store ports on an embedded SQLite database.
// The default DSN is ":memory:", which keeps the no-persistence contract of
// the memory backend while exercising the same SQL paths a file-backed
// deployment would use.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tally/internal/core"
	"tally/internal/store"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// DefaultDSN holds one session's data and discards it on close.
const DefaultDSN = ":memory:"

type Repository struct {
	db  *sql.DB
	gen store.IDGenerator
}

var (
	_ store.TransactionStore = (*TransactionStore)(nil)
	_ store.AppointmentStore = (*AppointmentStore)(nil)
)

// NewRepository opens the database at dsn and applies migrations. With an
// in-memory DSN the whole database lives on a single connection, so the pool
// is capped at one; this also serializes writers, which sqlite wants anyway.
func NewRepository(dsn string, gen store.IDGenerator) (*Repository, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	if gen == nil {
		gen = store.UUIDGenerator{}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, gen: gen}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Transactions() *TransactionStore {
	return &TransactionStore{r: r}
}

func (r *Repository) Appointments() *AppointmentStore {
	return &AppointmentStore{r: r}
}

type TransactionStore struct {
	r *Repository
}

func (ts *TransactionStore) Upsert(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	db := ts.r.db

	if t.ID == "" {
		t.ID = ts.r.gen.NewID()
		_, err := db.ExecContext(ctx,
			`INSERT INTO transactions (id, type, name, amount_cents, date) VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.Type.String(), t.Name, t.Amount.Cents, t.Date.Format(dateLayout))
		if err != nil {
			return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
		}
		return t, nil
	}

	res, err := db.ExecContext(ctx,
		`UPDATE transactions SET type = ?, name = ?, amount_cents = ?, date = ? WHERE id = ?`,
		t.Type.String(), t.Name, t.Amount.Cents, t.Date.Format(dateLayout), t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return core.Transaction{}, store.ErrNotFound
	}
	return t, nil
}

func (ts *TransactionStore) Delete(ctx context.Context, id string) error {
	if _, err := ts.r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (ts *TransactionStore) List(ctx context.Context) ([]core.Transaction, error) {
	return ts.query(ctx,
		`SELECT id, type, name, amount_cents, date FROM transactions ORDER BY seq`)
}

func (ts *TransactionStore) ListByType(ctx context.Context, typ core.TransactionType) ([]core.Transaction, error) {
	return ts.query(ctx,
		`SELECT id, type, name, amount_cents, date FROM transactions WHERE type = ? ORDER BY seq`,
		typ.String())
}

func (ts *TransactionStore) query(ctx context.Context, q string, args ...any) ([]core.Transaction, error) {
	rows, err := ts.r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			typ, ds string
		)
		if err := rows.Scan(&t.ID, &typ, &t.Name, &t.Amount.Cents, &ds); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(typ)
		t.Date, err = parseDate(ds)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

type AppointmentStore struct {
	r *Repository
}

func (as *AppointmentStore) Upsert(ctx context.Context, a core.Appointment) (core.Appointment, error) {
	db := as.r.db

	if a.ID == "" {
		a.ID = as.r.gen.NewID()
		_, err := db.ExecContext(ctx,
			`INSERT INTO appointments (id, title, date) VALUES (?, ?, ?)`,
			a.ID, a.Title, a.Date.Format(dateLayout))
		if err != nil {
			return core.Appointment{}, fmt.Errorf("insert appointment: %w", err)
		}
		return a, nil
	}

	res, err := db.ExecContext(ctx,
		`UPDATE appointments SET title = ?, date = ? WHERE id = ?`,
		a.Title, a.Date.Format(dateLayout), a.ID)
	if err != nil {
		return core.Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	if n == 0 {
		return core.Appointment{}, store.ErrNotFound
	}
	return a, nil
}

func (as *AppointmentStore) Delete(ctx context.Context, id string) error {
	if _, err := as.r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (as *AppointmentStore) List(ctx context.Context) ([]core.Appointment, error) {
	return as.query(ctx, `SELECT id, title, date FROM appointments ORDER BY seq`)
}

func (as *AppointmentStore) ListOnDate(ctx context.Context, d core.Date) ([]core.Appointment, error) {
	return as.query(ctx,
		`SELECT id, title, date FROM appointments WHERE date = ? ORDER BY seq`,
		d.Format(dateLayout))
}

func (as *AppointmentStore) query(ctx context.Context, q string, args ...any) ([]core.Appointment, error) {
	rows, err := as.r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var out []core.Appointment
	for rows.Next() {
		var (
			a  core.Appointment
			ds string
		)
		if err := rows.Scan(&a.ID, &a.Title, &ds); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.Date, err = parseDate(ds)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return out, nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return core.Date{Time: t}, nil
}
