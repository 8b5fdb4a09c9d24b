package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/db"
)

// StoredRoster is a run loaded back from the store
type StoredRoster struct {
	Run  db.RosterRun
	Grid *roster.Grid
}

// RosterView is a stored run with its score recomputed
type RosterView struct {
	StoredRoster
	Breakdown  []fitness.CriterionScore
	Violations []fitness.Violation
	Hours      []float64
}

// LoadRoster fetches a run and rebuilds its grid. An empty runID selects the
// most recently created run.
func LoadRoster(ctx context.Context, store db.RunReader, logger *zap.Logger, runID string) (*StoredRoster, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Debug("Fetching roster runs")
	runs, err := store.GetRosterRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster runs: %w", err)
	}

	var run db.RosterRun
	var ok bool
	if runID == "" {
		run, ok = db.LatestRun(runs)
		if !ok {
			return nil, fmt.Errorf("no roster runs found")
		}
		logger.Debug("Using latest run", zap.String("run_id", run.ID), zap.String("created_at", run.CreatedAt))
	} else {
		run, ok = db.FindRun(runs, runID)
		if !ok {
			return nil, fmt.Errorf("roster run not found: %s", runID)
		}
	}

	rows, err := store.GetRosterRows(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster rows: %w", err)
	}

	grid, err := decodeGrid(run, rows)
	if err != nil {
		return nil, err
	}

	return &StoredRoster{Run: run, Grid: grid}, nil
}

// ViewRoster loads a run and scores it with evaluator. The stored score is
// kept as recorded; weights may have changed since.
func ViewRoster(ctx context.Context, store db.RunReader, evaluator *fitness.Evaluator, logger *zap.Logger, runID string) (*RosterView, error) {
	stored, err := LoadRoster(ctx, store, logger, runID)
	if err != nil {
		return nil, err
	}

	return &RosterView{
		StoredRoster: *stored,
		Breakdown:    evaluator.Breakdown(stored.Grid),
		Violations:   evaluator.Violations(stored.Grid),
		Hours:        fitness.StaffHours(stored.Grid),
	}, nil
}
