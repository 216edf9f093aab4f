// Package store persists allocation runs behind a driver-agnostic
// interface with SQLite and Postgres implementations.
package store

import (
	"context"

	"github.com/sells-group/revenue-map/internal/model"
)

// Store defines the persistence interface for allocation runs.
type Store interface {
	// SaveRun persists a completed allocation run and returns it with
	// its assigned ID.
	SaveRun(ctx context.Context, result *model.Result) (*model.Run, error)

	// GetRun returns a run by ID, result included.
	GetRun(ctx context.Context, runID string) (*model.Run, error)

	// LatestRun returns the most recently created run, result included.
	// Returns nil when no runs exist.
	LatestRun(ctx context.Context) (*model.Run, error)

	// ListRuns returns run metadata (no results), newest first.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
