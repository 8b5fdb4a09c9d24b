package fitness

import "github.com/jakechorley/shift-roster/pkg/core/roster"

// Violation locates a single penalised occurrence in a grid.
// StaffIndex or Day is -1 when the violation is not tied to one.
type Violation struct {
	CriterionName string
	StaffIndex    int
	Day           int
	Units         float64
	Description   string
}

// Criterion scores one aspect of a roster
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// Weight is multiplied by the penalty units to get the score deduction
	Weight() float64

	// Penalty returns the unweighted penalty units for the grid.
	// Must be pure: no randomness, no mutation of the grid.
	Penalty(grid *roster.Grid) float64

	// Violations lists every occurrence that contributed to Penalty
	Violations(grid *roster.Grid) []Violation
}

// visitor receives each penalised occurrence found while scanning a grid
type visitor func(v Violation)

// sumUnits runs a scan and adds up the units it reports
func sumUnits(scan func(*roster.Grid, visitor), grid *roster.Grid) float64 {
	total := 0.0
	scan(grid, func(v Violation) {
		total += v.Units
	})
	return total
}

// collect runs a scan and keeps every violation it reports
func collect(scan func(*roster.Grid, visitor), grid *roster.Grid) []Violation {
	var violations []Violation
	scan(grid, func(v Violation) {
		violations = append(violations, v)
	})
	return violations
}
