package fitness

import (
	"fmt"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// Units charged for the day on which a working run reaches each length
const (
	consecutiveWorkUnitsAt3   = 1
	consecutiveWorkUnitsAt4   = 5
	consecutiveWorkUnitsFrom5 = 10
)

// ConsecutiveWorkCriterion progressively penalises long working runs.
// Each day of a run is charged on its own: the third consecutive working day
// costs 1 unit, the fourth 5 and every day from the fifth on 10.
type ConsecutiveWorkCriterion struct {
	weight float64
}

func NewConsecutiveWorkCriterion(weight float64) *ConsecutiveWorkCriterion {
	return &ConsecutiveWorkCriterion{weight: weight}
}

func (c *ConsecutiveWorkCriterion) Name() string {
	return "ConsecutiveWork"
}

func (c *ConsecutiveWorkCriterion) Weight() float64 {
	return c.weight
}

func (c *ConsecutiveWorkCriterion) Penalty(grid *roster.Grid) float64 {
	return sumUnits(c.scan, grid)
}

func (c *ConsecutiveWorkCriterion) Violations(grid *roster.Grid) []Violation {
	return collect(c.scan, grid)
}

func (c *ConsecutiveWorkCriterion) scan(grid *roster.Grid, visit visitor) {
	for s := 0; s < grid.StaffCount(); s++ {
		run := 0
		for d := 0; d < grid.DayCount(); d++ {
			if grid.At(s, d).IsWorking() {
				run++
			} else {
				run = 0
			}

			units := runUnits(run)
			if units == 0 {
				continue
			}
			visit(Violation{
				CriterionName: c.Name(),
				StaffIndex:    s,
				Day:           d,
				Units:         units,
				Description:   fmt.Sprintf("Working %d days in a row", run),
			})
		}
	}
}

func runUnits(run int) float64 {
	switch {
	case run >= 5:
		return consecutiveWorkUnitsFrom5
	case run == 4:
		return consecutiveWorkUnitsAt4
	case run == 3:
		return consecutiveWorkUnitsAt3
	}
	return 0
}
