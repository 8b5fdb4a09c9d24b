package fitness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// testStaff describes one row of a hand-built grid
type testStaff struct {
	categories []roster.Category
	offset     *int
	row        string // space separated shift labels, e.g. "DL N R R"
}

func offset(o int) *int {
	return &o
}

// buildGrid constructs a grid directly from labelled rows. Every V cell is
// registered as a fixed vacation.
func buildGrid(t *testing.T, rows ...testStaff) *roster.Grid {
	t.Helper()

	members := make([]roster.StaffMember, len(rows))
	cells := make([][]roster.ShiftCode, len(rows))
	vacations := roster.NewVacationMask()
	offsets := roster.RotationOffsets{}
	dayCount := -1

	for s, r := range rows {
		members[s] = roster.StaffMember{Name: fmt.Sprintf("staff-%d", s), Categories: r.categories}
		if r.offset != nil {
			offsets[s] = *r.offset
		}

		labels := strings.Fields(r.row)
		if dayCount == -1 {
			dayCount = len(labels)
		}
		require.Len(t, labels, dayCount, "row %d", s)

		cells[s] = make([]roster.ShiftCode, len(labels))
		for d, label := range labels {
			code, err := roster.ParseShiftCode(label)
			require.NoError(t, err)
			cells[s][d] = code
			if code == roster.Vacation {
				vacations[roster.Cell{Staff: s, Day: d}] = struct{}{}
			}
		}
	}

	problem, err := roster.NewProblem(roster.NewStaffRoster(members), dayCount, vacations, offsets)
	require.NoError(t, err)
	grid, err := roster.NewGrid(problem, cells)
	require.NoError(t, err)
	return grid
}

var (
	system   = []roster.Category{roster.SystemRole}
	security = []roster.Category{roster.SecurityRole}
	support  = []roster.Category{roster.SystemRole, roster.SupportMember}
	team     = []roster.Category{roster.SystemRole, roster.RegularTeamMember}
)
