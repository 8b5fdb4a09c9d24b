package fitness

import (
	"fmt"
	"math"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// WorkingHoursCriterion measures how unevenly hours are spread: the penalty is
// the population standard deviation of per-staff total hours
type WorkingHoursCriterion struct {
	weight float64
}

func NewWorkingHoursCriterion(weight float64) *WorkingHoursCriterion {
	return &WorkingHoursCriterion{weight: weight}
}

func (c *WorkingHoursCriterion) Name() string {
	return "WorkingHours"
}

func (c *WorkingHoursCriterion) Weight() float64 {
	return c.weight
}

func (c *WorkingHoursCriterion) Penalty(grid *roster.Grid) float64 {
	return stdDev(StaffHours(grid))
}

func (c *WorkingHoursCriterion) Violations(grid *roster.Grid) []Violation {
	hours := StaffHours(grid)
	spread := stdDev(hours)
	if spread == 0 {
		return nil
	}

	minHours, maxHours := hours[0], hours[0]
	for _, h := range hours {
		minHours = math.Min(minHours, h)
		maxHours = math.Max(maxHours, h)
	}
	return []Violation{{
		CriterionName: c.Name(),
		StaffIndex:    -1,
		Day:           -1,
		Units:         spread,
		Description:   fmt.Sprintf("Hours range from %.0f to %.0f (std dev %.2f)", minHours, maxHours, spread),
	}}
}

// StaffHours totals the working hours of each staff member
func StaffHours(grid *roster.Grid) []float64 {
	hours := make([]float64, grid.StaffCount())
	for s := range hours {
		for d := 0; d < grid.DayCount(); d++ {
			hours[s] += float64(grid.At(s, d).Hours())
		}
	}
	return hours
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
