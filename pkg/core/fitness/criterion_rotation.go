package fitness

import (
	"fmt"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// RotationCycleCriterion keeps regular team members with a rotation offset
// on their [Day, Night, Rest, Rest] cycle. Offsets on anyone else only steer
// the initializer. Vacation days are skipped.
type RotationCycleCriterion struct {
	weight float64
}

func NewRotationCycleCriterion(weight float64) *RotationCycleCriterion {
	return &RotationCycleCriterion{weight: weight}
}

func (c *RotationCycleCriterion) Name() string {
	return "RotationCycle"
}

func (c *RotationCycleCriterion) Weight() float64 {
	return c.weight
}

func (c *RotationCycleCriterion) Penalty(grid *roster.Grid) float64 {
	return sumUnits(c.scan, grid)
}

func (c *RotationCycleCriterion) Violations(grid *roster.Grid) []Violation {
	return collect(c.scan, grid)
}

func (c *RotationCycleCriterion) scan(grid *roster.Grid, visit visitor) {
	problem := grid.Problem()
	staff := problem.Staff()

	for s := 0; s < grid.StaffCount(); s++ {
		if !staff.Has(s, roster.RegularTeamMember) {
			continue
		}
		offset, ok := problem.Offset(s)
		if !ok {
			continue
		}

		for d := 0; d < grid.DayCount(); d++ {
			actual := grid.At(s, d)
			if actual == roster.Vacation {
				continue
			}
			expected := roster.ExpectedSymbol(offset, d)
			if !expected.Matches(actual) {
				visit(Violation{
					CriterionName: c.Name(),
					StaffIndex:    s,
					Day:           d,
					Units:         1,
					Description:   fmt.Sprintf("Expected %s in cycle, got %s", expected, actual),
				})
			}
		}
	}
}
