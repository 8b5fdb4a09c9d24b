package search

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// progressInterval is the number of generations between progress logs
const progressInterval = 50

// pcgStream is the fixed second word of every PCG source built from a seed
const pcgStream = 0x5851f42d4c957f2d

// Scorer scores a grid. Implementations must be pure and safe for
// concurrent use.
type Scorer interface {
	Score(grid *roster.Grid) float64
}

// Search runs the generational population search for one problem
type Search struct {
	problem  *roster.Problem
	scorer   Scorer
	params   Params
	rng      *rand.Rand
	logger   *zap.Logger
	observer func(GenerationStats)

	phase      Phase
	population []*Candidate
	bestEver   *Candidate
}

// New validates the parameters and prepares a search. All randomness comes
// from params.Seed so identical inputs replay identically.
func New(problem *roster.Problem, scorer Scorer, params Params, logger *zap.Logger) (*Search, error) {
	if problem == nil {
		return nil, fmt.Errorf("%w: search requires a problem", roster.ErrInvalidInput)
	}
	if scorer == nil {
		return nil, fmt.Errorf("%w: search requires a scorer", roster.ErrInvalidInput)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Search{
		problem: problem,
		scorer:  scorer,
		params:  params,
		rng:     NewRNG(params.Seed),
		logger:  logger,
		phase:   PhaseSeeding,
	}, nil
}

// NewRNG builds the random source used for a given seed
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// OnGeneration registers a callback invoked after every generation is ranked
func (s *Search) OnGeneration(fn func(GenerationStats)) {
	s.observer = fn
}

// Phase returns the current state of the search
func (s *Search) Phase() Phase {
	return s.phase
}

// Run executes the search until the generation limit, the success threshold
// or cancellation of ctx, and returns the best candidate ever seen.
// ctx is only checked between generations.
func (s *Search) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search cancelled before start: %w", err)
	}

	s.logger.Info("Starting search",
		zap.Int("staff", s.problem.StaffCount()),
		zap.Int("days", s.problem.DayCount()),
		zap.Int("population", s.params.PopulationSize),
		zap.Int("generation_limit", s.params.GenerationLimit),
		zap.Int("workers", s.params.Workers),
		zap.Uint64("seed", s.params.Seed))

	s.phase = PhaseSeeding
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed population: %w", err)
	}

	result := &Result{
		StopReason: StopGenerationLimit,
		History:    make([]GenerationStats, 0, s.params.GenerationLimit),
		Seed:       s.params.Seed,
	}

	for gen := 0; gen < s.params.GenerationLimit; gen++ {
		s.phase = PhaseEvaluating
		if err := s.evaluate(); err != nil {
			return nil, fmt.Errorf("failed to evaluate generation %d: %w", gen, err)
		}

		s.phase = PhaseSelecting
		stats := s.rank(gen)
		result.History = append(result.History, stats)
		result.Generations = gen + 1

		if s.observer != nil {
			s.observer(stats)
		}
		if gen%progressInterval == 0 {
			s.logger.Info("Search progress",
				zap.Int("generation", gen),
				zap.Float64("best_score", stats.Best),
				zap.Float64("best_ever", stats.BestEver))
		}

		if stats.Best >= s.params.SuccessThreshold {
			result.StopReason = StopThreshold
			break
		}
		if gen+1 == s.params.GenerationLimit {
			break
		}
		if ctx.Err() != nil {
			result.StopReason = StopCancelled
			break
		}

		s.phase = PhaseRefilling
		s.refill()
	}

	s.phase = PhaseDone
	result.Best = *s.bestEver

	s.logger.Info("Search finished",
		zap.String("stop_reason", string(result.StopReason)),
		zap.Int("generations", result.Generations),
		zap.Float64("best_score", result.Best.Score))

	return result, nil
}

// seed builds the initial population. Child sources are drawn from the search
// source in order so the population does not depend on goroutine scheduling.
// Every Run starts over from params.Seed with no best candidate.
func (s *Search) seed() error {
	s.rng = NewRNG(s.params.Seed)
	s.bestEver = nil
	s.population = make([]*Candidate, s.params.PopulationSize)
	sources := make([]*rand.Rand, s.params.PopulationSize)
	for i := range sources {
		sources[i] = rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
	}

	var g errgroup.Group
	g.SetLimit(s.params.Workers)
	for i := range s.population {
		g.Go(func() error {
			grid, err := roster.Seed(s.problem, sources[i])
			if err != nil {
				return err
			}
			s.population[i] = &Candidate{Grid: grid}
			return nil
		})
	}
	return g.Wait()
}

// evaluate scores every candidate that has not been scored yet. Each worker
// writes only to its own candidate.
func (s *Search) evaluate() error {
	var g errgroup.Group
	g.SetLimit(s.params.Workers)
	for _, c := range s.population {
		if c.evaluated {
			continue
		}
		g.Go(func() error {
			c.Score = s.scorer.Score(c.Grid)
			c.evaluated = true
			return nil
		})
	}
	return g.Wait()
}

// rank sorts the population by descending score and updates the best-ever
// candidate on strict improvement
func (s *Search) rank(gen int) GenerationStats {
	slices.SortStableFunc(s.population, func(a, b *Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	best := s.population[0]
	if s.bestEver == nil || best.Score > s.bestEver.Score {
		s.bestEver = &Candidate{Grid: best.Grid, Score: best.Score, evaluated: true}
	}

	total := 0.0
	for _, c := range s.population {
		total += c.Score
	}

	return GenerationStats{
		Generation: gen,
		Best:       best.Score,
		Mean:       total / float64(len(s.population)),
		BestEver:   s.bestEver.Score,
	}
}

// refill keeps the elites and tops the population up with mutated copies of
// uniformly chosen elites
func (s *Search) refill() {
	elites := s.population[:s.params.EliteCount()]

	next := make([]*Candidate, 0, s.params.PopulationSize)
	next = append(next, elites...)
	for len(next) < s.params.PopulationSize {
		parent := elites[s.rng.IntN(len(elites))]
		child := roster.Mutate(parent.Grid, s.params.MutationRate, s.rng)
		next = append(next, &Candidate{Grid: child})
	}

	s.population = next
}
