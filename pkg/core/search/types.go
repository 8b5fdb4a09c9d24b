package search

import "github.com/jakechorley/shift-roster/pkg/core/roster"

// Phase is the state of the search state machine
type Phase int

const (
	PhaseSeeding Phase = iota
	PhaseEvaluating
	PhaseSelecting
	PhaseRefilling
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseSeeding:
		return "seeding"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseSelecting:
		return "selecting"
	case PhaseRefilling:
		return "refilling"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// StopReason records why the search terminated
type StopReason string

const (
	StopGenerationLimit StopReason = "generation_limit"
	StopThreshold       StopReason = "threshold"
	StopCancelled       StopReason = "cancelled"
)

// Candidate pairs a grid with its fitness score
type Candidate struct {
	Grid  *roster.Grid
	Score float64

	// evaluated is false until the candidate has been scored. Elites keep
	// their score across generations.
	evaluated bool
}

// GenerationStats summarises one completed generation
type GenerationStats struct {
	Generation int
	Best       float64
	Mean       float64
	BestEver   float64
}

// Result is the outcome of a search run
type Result struct {
	// Best is the best candidate seen across every generation, which is not
	// necessarily the best of the final generation
	Best Candidate

	// Generations is the number of generations that were evaluated
	Generations int

	StopReason StopReason

	// History holds the stats of every evaluated generation in order
	History []GenerationStats

	// Seed is the seed the search ran with, for replay
	Seed uint64
}
