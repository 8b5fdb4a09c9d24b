package fitness

import (
	"fmt"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// RoleBalanceCriterion requires every working group to contain at least one
// system and one security staff member.
//
// Penalty:
//   - 1 unit per day for a day-working group missing either role
//   - 1 unit per day for a night-working group missing either role
//   - Empty groups are missing both and count once
type RoleBalanceCriterion struct {
	weight float64
}

func NewRoleBalanceCriterion(weight float64) *RoleBalanceCriterion {
	return &RoleBalanceCriterion{weight: weight}
}

func (c *RoleBalanceCriterion) Name() string {
	return "RoleBalance"
}

func (c *RoleBalanceCriterion) Weight() float64 {
	return c.weight
}

func (c *RoleBalanceCriterion) Penalty(grid *roster.Grid) float64 {
	return sumUnits(c.scan, grid)
}

func (c *RoleBalanceCriterion) Violations(grid *roster.Grid) []Violation {
	return collect(c.scan, grid)
}

func (c *RoleBalanceCriterion) scan(grid *roster.Grid, visit visitor) {
	staff := grid.Problem().Staff()

	for d := 0; d < grid.DayCount(); d++ {
		var daySystem, daySecurity, nightSystem, nightSecurity bool
		for s := 0; s < grid.StaffCount(); s++ {
			code := grid.At(s, d)
			switch {
			case code.IsDayWorking():
				daySystem = daySystem || staff.Has(s, roster.SystemRole)
				daySecurity = daySecurity || staff.Has(s, roster.SecurityRole)
			case code.IsNightWorking():
				nightSystem = nightSystem || staff.Has(s, roster.SystemRole)
				nightSecurity = nightSecurity || staff.Has(s, roster.SecurityRole)
			}
		}

		if !daySystem || !daySecurity {
			visit(Violation{
				CriterionName: c.Name(),
				StaffIndex:    -1,
				Day:           d,
				Units:         1,
				Description:   fmt.Sprintf("Day group lacks %s", missingRoles(daySystem, daySecurity)),
			})
		}
		if !nightSystem || !nightSecurity {
			visit(Violation{
				CriterionName: c.Name(),
				StaffIndex:    -1,
				Day:           d,
				Units:         1,
				Description:   fmt.Sprintf("Night group lacks %s", missingRoles(nightSystem, nightSecurity)),
			})
		}
	}
}

func missingRoles(hasSystem, hasSecurity bool) string {
	switch {
	case !hasSystem && !hasSecurity:
		return "system and security staff"
	case !hasSystem:
		return "system staff"
	default:
		return "security staff"
	}
}
