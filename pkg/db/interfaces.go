package db

import (
	"context"
	"time"
)

// RunReader defines the read side of the roster run store
type RunReader interface {
	GetRosterRuns(ctx context.Context) ([]RosterRun, error)
	GetRosterRows(ctx context.Context, runID string) ([]RosterRow, error)
}

// Database defines the interface for all database operations.
// Both the SheetsSQL-backed db.DB and postgres.DB implement this interface.
type Database interface {
	RunReader
	InsertRosterRun(ctx context.Context, run *RosterRun, rows []RosterRow) error
	SetRunPublishedDatetime(ctx context.Context, runID string, datetime time.Time) error
}
