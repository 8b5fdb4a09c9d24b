package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/shift-roster/pkg/sheetssql"
)

// DB provides database operations using SheetsSQL
type DB struct {
	ssql *sheetssql.DB
}

// NewDB creates a new database instance
func NewDB(ssql *sheetssql.DB) *DB {
	return &DB{
		ssql: ssql,
	}
}

// Schema returns the SheetsSQL tables backing DB
func Schema() (*sheetssql.Schema, error) {
	return sheetssql.SchemaFromModels(RosterRun{}, RosterRow{})
}

// GetRosterRuns retrieves all run records
func (db *DB) GetRosterRuns(ctx context.Context) ([]RosterRun, error) {
	runs, err := sheetssql.GetTableAs[RosterRun](ctx, db.ssql)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster runs: %w", err)
	}
	return runs, nil
}

// GetRosterRows retrieves the rows of one run ordered by staff index
func (db *DB) GetRosterRows(ctx context.Context, runID string) ([]RosterRow, error) {
	all, err := sheetssql.GetTableAs[RosterRow](ctx, db.ssql)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster rows: %w", err)
	}

	var rows []RosterRow
	for _, row := range all {
		if row.RunID == runID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StaffIndex < rows[j].StaffIndex
	})
	return rows, nil
}

// InsertRosterRun inserts a run followed by its rows. Sheets has no
// transactions so a failure between the two leaves a run without rows,
// which readers report as incomplete.
func (db *DB) InsertRosterRun(ctx context.Context, run *RosterRun, rows []RosterRow) error {
	if err := sheetssql.InsertModels(ctx, db.ssql, []RosterRun{*run}); err != nil {
		return fmt.Errorf("failed to insert roster run: %w", err)
	}
	if err := sheetssql.InsertModels(ctx, db.ssql, rows); err != nil {
		return fmt.Errorf("failed to insert roster rows: %w", err)
	}
	return nil
}

// SetRunPublishedDatetime is a no-op for SheetsSQL (feature targets Postgres only)
func (db *DB) SetRunPublishedDatetime(ctx context.Context, runID string, datetime time.Time) error {
	return nil
}

// LatestRun returns the run with the newest CreatedAt timestamp
func LatestRun(runs []RosterRun) (RosterRun, bool) {
	if len(runs) == 0 {
		return RosterRun{}, false
	}

	latest := runs[0]
	latestAt, _ := time.Parse(time.RFC3339Nano, latest.CreatedAt)
	for _, run := range runs[1:] {
		createdAt, err := time.Parse(time.RFC3339Nano, run.CreatedAt)
		if err != nil {
			continue
		}
		if createdAt.After(latestAt) {
			latest, latestAt = run, createdAt
		}
	}
	return latest, true
}

// FindRun returns the run with the given ID
func FindRun(runs []RosterRun, runID string) (RosterRun, bool) {
	for _, run := range runs {
		if run.ID == runID {
			return run, true
		}
	}
	return RosterRun{}, false
}
