package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/core/search"
	"github.com/jakechorley/shift-roster/pkg/db"
)

// GenerateOptions controls a single generate run
type GenerateOptions struct {
	// Seed makes the run reproducible. A nil seed draws a random one, which
	// is still recorded on the stored run.
	Seed *uint64

	// DryRun skips persisting the run
	DryRun bool

	// OnGeneration is called after every generation
	OnGeneration func(search.GenerationStats)
}

// GenerateResult represents the outcome of a generate run
type GenerateResult struct {
	Run        *db.RosterRun
	Rows       []db.RosterRow
	Grid       *roster.Grid
	Search     *search.Result
	Breakdown  []fitness.CriterionScore
	Violations []fitness.Violation
	Saved      bool
}

// now is replaced in tests
var now = time.Now

// GenerateRoster builds the problem from config, runs the search and, unless
// DryRun is set, stores the best roster as a new run.
// store may be nil for dry runs.
func GenerateRoster(ctx context.Context, store db.Database, cfg *config.Config, logger *zap.Logger, opts GenerateOptions) (*GenerateResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil && !opts.DryRun {
		return nil, fmt.Errorf("a store is required unless dry run is set")
	}

	problem, err := BuildProblem(cfg)
	if err != nil {
		return nil, err
	}

	params := SearchParamsFromConfig(cfg)
	if opts.Seed != nil {
		params.Seed = *opts.Seed
	} else {
		params.Seed = rand.Uint64()
	}

	evaluator := fitness.NewEvaluator(WeightsFromConfig(cfg))

	logger.Debug("Generating roster",
		zap.String("period_start", cfg.PeriodStart),
		zap.Int("days", problem.DayCount()),
		zap.Int("staff", problem.StaffCount()),
		zap.Int("vacation_cells", len(problem.Vacations())),
		zap.Int("rotation_offsets", len(problem.Offsets())),
		zap.Uint64("seed", params.Seed))

	s, err := search.New(problem, evaluator, params, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create search: %w", err)
	}
	if opts.OnGeneration != nil {
		s.OnGeneration(opts.OnGeneration)
	}

	searchResult, err := s.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	best := searchResult.Best
	run := &db.RosterRun{
		ID:          uuid.New().String(),
		PeriodStart: cfg.PeriodStart,
		Days:        problem.DayCount(),
		StaffCount:  problem.StaffCount(),
		Seed:        searchResult.Seed,
		Score:       best.Score,
		Generations: searchResult.Generations,
		StopReason:  string(searchResult.StopReason),
		CreatedAt:   now().UTC().Format(time.RFC3339Nano),
	}
	rows := encodeRows(run.ID, best.Grid)

	result := &GenerateResult{
		Run:        run,
		Rows:       rows,
		Grid:       best.Grid,
		Search:     searchResult,
		Breakdown:  evaluator.Breakdown(best.Grid),
		Violations: evaluator.Violations(best.Grid),
	}

	if opts.DryRun {
		logger.Info("Dry run, roster not saved",
			zap.Float64("score", run.Score),
			zap.Int("violations", len(result.Violations)))
		return result, nil
	}

	if err := store.InsertRosterRun(ctx, run, rows); err != nil {
		return nil, fmt.Errorf("failed to save roster run: %w", err)
	}
	result.Saved = true

	logger.Info("Roster saved",
		zap.String("run_id", run.ID),
		zap.Float64("score", run.Score),
		zap.String("stop_reason", run.StopReason),
		zap.Int("violations", len(result.Violations)))

	return result, nil
}
