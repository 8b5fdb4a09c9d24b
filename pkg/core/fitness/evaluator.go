package fitness

import "github.com/jakechorley/shift-roster/pkg/core/roster"

// CriterionScore is one line of a score breakdown
type CriterionScore struct {
	Name      string
	Units     float64
	Weight    float64
	Deduction float64
}

// Evaluator scores grids against a fixed set of criteria. It holds no
// mutable state and is safe for concurrent use.
type Evaluator struct {
	base     float64
	criteria []Criterion
}

// NewEvaluator builds an evaluator with the seven standard criteria
func NewEvaluator(w Weights) *Evaluator {
	return NewEvaluatorWithCriteria(BaseScore,
		NewRoleBalanceCriterion(w.RoleBalance),
		NewRestAfterNightCriterion(w.RestAfterNight),
		NewRotationCycleCriterion(w.RotationCycle),
		NewLeaderPriorityCriterion(w.LeaderPriority),
		NewConsecutiveWorkCriterion(w.ConsecutiveWork),
		NewConsecutiveOffCriterion(w.ConsecutiveOff),
		NewWorkingHoursCriterion(w.WorkingHours),
	)
}

// DefaultEvaluator uses DefaultWeights
func DefaultEvaluator() *Evaluator {
	return NewEvaluator(DefaultWeights())
}

func NewEvaluatorWithCriteria(base float64, criteria ...Criterion) *Evaluator {
	return &Evaluator{base: base, criteria: criteria}
}

// Score returns the base score minus every weighted penalty. Higher is better.
func (e *Evaluator) Score(grid *roster.Grid) float64 {
	score := e.base
	for _, c := range e.criteria {
		score -= c.Penalty(grid) * c.Weight()
	}
	return score
}

// Breakdown reports the units and deduction of each criterion
func (e *Evaluator) Breakdown(grid *roster.Grid) []CriterionScore {
	breakdown := make([]CriterionScore, 0, len(e.criteria))
	for _, c := range e.criteria {
		units := c.Penalty(grid)
		breakdown = append(breakdown, CriterionScore{
			Name:      c.Name(),
			Units:     units,
			Weight:    c.Weight(),
			Deduction: units * c.Weight(),
		})
	}
	return breakdown
}

// Violations lists every located violation across all criteria
func (e *Evaluator) Violations(grid *roster.Grid) []Violation {
	var violations []Violation
	for _, c := range e.criteria {
		violations = append(violations, c.Violations(grid)...)
	}
	return violations
}
