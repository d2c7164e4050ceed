// Package backend selects and constructs the store implementation from
// configuration.
package backend

import (
	"context"

	"tally/internal/store"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult holds the constructed store ports and optional cleanup.
type BackendResult struct {
	Transactions store.TransactionStore
	Appointments store.AppointmentStore
	Cleanup      CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDSN string

	// Seeding
	SeedFile string

	// Injectable for tests; nil means UUIDs.
	IDGenerator store.IDGenerator
}

type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
