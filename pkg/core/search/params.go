package search

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// Params configures a search run
type Params struct {
	// PopulationSize is the number of candidates in every generation
	PopulationSize int `validate:"min=1"`

	// GenerationLimit is the maximum number of generations to evaluate
	GenerationLimit int `validate:"min=1"`

	// EliteFraction of each ranked generation is carried over unchanged
	EliteFraction float64 `validate:"gt=0,lte=1"`

	// MutationRate is the per-day swap probability used when refilling
	MutationRate float64 `validate:"gte=0,lte=1"`

	// SuccessThreshold stops the search as soon as a generation's best
	// score reaches it
	SuccessThreshold float64

	// Workers bounds the goroutines used for seeding and evaluation
	Workers int `validate:"min=1"`

	// Seed drives every random choice of the run
	Seed uint64
}

// DefaultParams returns the standard search configuration
func DefaultParams() Params {
	return Params{
		PopulationSize:   50,
		GenerationLimit:  3000,
		EliteFraction:    0.2,
		MutationRate:     0.2,
		SuccessThreshold: 4900,
		Workers:          runtime.GOMAXPROCS(0),
	}
}

var validate = validator.New()

// Validate checks the parameters are usable
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: search params validation failed: %v", roster.ErrInvalidInput, err)
	}
	return nil
}

// EliteCount is the number of candidates kept unchanged between generations.
// At least one elite is always kept.
func (p Params) EliteCount() int {
	count := int(float64(p.PopulationSize) * p.EliteFraction)
	return min(max(1, count), p.PopulationSize)
}
