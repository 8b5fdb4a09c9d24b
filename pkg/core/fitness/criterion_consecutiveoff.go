package fitness

import (
	"fmt"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// MaxConsecutiveOff is the longest run of Rest/Vacation days without penalty
const MaxConsecutiveOff = 2

// ConsecutiveOffCriterion charges 1 unit for every non-working day beyond
// MaxConsecutiveOff in a row
type ConsecutiveOffCriterion struct {
	weight float64
}

func NewConsecutiveOffCriterion(weight float64) *ConsecutiveOffCriterion {
	return &ConsecutiveOffCriterion{weight: weight}
}

func (c *ConsecutiveOffCriterion) Name() string {
	return "ConsecutiveOff"
}

func (c *ConsecutiveOffCriterion) Weight() float64 {
	return c.weight
}

func (c *ConsecutiveOffCriterion) Penalty(grid *roster.Grid) float64 {
	return sumUnits(c.scan, grid)
}

func (c *ConsecutiveOffCriterion) Violations(grid *roster.Grid) []Violation {
	return collect(c.scan, grid)
}

func (c *ConsecutiveOffCriterion) scan(grid *roster.Grid, visit visitor) {
	for s := 0; s < grid.StaffCount(); s++ {
		run := 0
		for d := 0; d < grid.DayCount(); d++ {
			if grid.At(s, d).IsOff() {
				run++
			} else {
				run = 0
			}
			if run > MaxConsecutiveOff {
				visit(Violation{
					CriterionName: c.Name(),
					StaffIndex:    s,
					Day:           d,
					Units:         1,
					Description:   fmt.Sprintf("Off %d days in a row", run),
				})
			}
		}
	}
}
