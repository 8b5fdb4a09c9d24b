package fitness

import (
	"fmt"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// RestAfterNightCriterion requires a Rest day after every night shift.
// A Vacation straight after a night counts as a violation too; this is the
// dominant rule and carries a near-fatal weight.
type RestAfterNightCriterion struct {
	weight float64
}

func NewRestAfterNightCriterion(weight float64) *RestAfterNightCriterion {
	return &RestAfterNightCriterion{weight: weight}
}

func (c *RestAfterNightCriterion) Name() string {
	return "RestAfterNight"
}

func (c *RestAfterNightCriterion) Weight() float64 {
	return c.weight
}

func (c *RestAfterNightCriterion) Penalty(grid *roster.Grid) float64 {
	return sumUnits(c.scan, grid)
}

func (c *RestAfterNightCriterion) Violations(grid *roster.Grid) []Violation {
	return collect(c.scan, grid)
}

func (c *RestAfterNightCriterion) scan(grid *roster.Grid, visit visitor) {
	for s := 0; s < grid.StaffCount(); s++ {
		for d := 0; d+1 < grid.DayCount(); d++ {
			if !grid.At(s, d).IsNightWorking() {
				continue
			}
			if next := grid.At(s, d+1); next != roster.Rest {
				visit(Violation{
					CriterionName: c.Name(),
					StaffIndex:    s,
					Day:           d + 1,
					Units:         1,
					Description:   fmt.Sprintf("Night shift followed by %s instead of rest", next),
				})
			}
		}
	}
}
