package fitness

import (
	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// LeaderPriorityCriterion gives support staff first claim on the lead slot.
//
// Penalty:
//   - 1 unit per working group per day that contains support staff while the
//     lead code (DayLead / NightLead) is held by non-support staff
//   - Groups without support staff or without a lead code are never penalised
type LeaderPriorityCriterion struct {
	weight float64
}

func NewLeaderPriorityCriterion(weight float64) *LeaderPriorityCriterion {
	return &LeaderPriorityCriterion{weight: weight}
}

func (c *LeaderPriorityCriterion) Name() string {
	return "LeaderPriority"
}

func (c *LeaderPriorityCriterion) Weight() float64 {
	return c.weight
}

func (c *LeaderPriorityCriterion) Penalty(grid *roster.Grid) float64 {
	return sumUnits(c.scan, grid)
}

func (c *LeaderPriorityCriterion) Violations(grid *roster.Grid) []Violation {
	return collect(c.scan, grid)
}

func (c *LeaderPriorityCriterion) scan(grid *roster.Grid, visit visitor) {
	for d := 0; d < grid.DayCount(); d++ {
		c.checkGroup(grid, d, roster.ShiftCode.IsDayWorking, roster.DayLead, "Day", visit)
		c.checkGroup(grid, d, roster.ShiftCode.IsNightWorking, roster.NightLead, "Night", visit)
	}
}

func (c *LeaderPriorityCriterion) checkGroup(grid *roster.Grid, day int, inGroup func(roster.ShiftCode) bool, lead roster.ShiftCode, label string, visit visitor) {
	staff := grid.Problem().Staff()

	hasSupport := false
	leadIdx := -1
	for s := 0; s < grid.StaffCount(); s++ {
		code := grid.At(s, day)
		if !inGroup(code) {
			continue
		}
		if staff.Has(s, roster.SupportMember) {
			hasSupport = true
		}
		if code == lead && leadIdx == -1 {
			leadIdx = s
		}
	}

	if !hasSupport || leadIdx == -1 {
		return
	}
	if staff.Has(leadIdx, roster.SupportMember) {
		return
	}

	visit(Violation{
		CriterionName: c.Name(),
		StaffIndex:    leadIdx,
		Day:           day,
		Units:         1,
		Description:   label + " lead is not support staff although support staff are on shift",
	})
}
