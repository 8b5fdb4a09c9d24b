package services

import (
	"fmt"
	"strings"

	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/db"
)

// encodeRows flattens a grid into one stored row per staff member
func encodeRows(runID string, grid *roster.Grid) []db.RosterRow {
	problem := grid.Problem()
	staff := problem.Staff()

	rows := make([]db.RosterRow, staff.Len())
	for i := range rows {
		member := staff.Member(i)

		categories := make([]string, len(member.Categories))
		for j, c := range member.Categories {
			categories[j] = string(c)
		}

		codes := make([]string, grid.DayCount())
		for day, code := range grid.Row(i) {
			codes[day] = code.String()
		}

		offset := db.NoOffset
		if o, ok := problem.Offset(i); ok {
			offset = o
		}

		rows[i] = db.RosterRow{
			RunID:      runID,
			StaffIndex: i,
			StaffName:  member.Name,
			Team:       member.Team,
			Categories: strings.Join(categories, ","),
			Offset:     offset,
			Codes:      strings.Join(codes, " "),
		}
	}
	return rows
}

// decodeGrid rebuilds the problem and grid of a stored run. Vacation cells
// are recovered from the V codes.
func decodeGrid(run db.RosterRun, rows []db.RosterRow) (*roster.Grid, error) {
	if len(rows) != run.StaffCount {
		return nil, fmt.Errorf("run %s is incomplete: expected %d rows, found %d", run.ID, run.StaffCount, len(rows))
	}

	members := make([]roster.StaffMember, len(rows))
	cells := make([][]roster.ShiftCode, len(rows))
	offsets := roster.RotationOffsets{}
	var vacations []roster.Cell

	for i, row := range rows {
		if row.StaffIndex != i {
			return nil, fmt.Errorf("run %s: expected staff index %d, found %d", run.ID, i, row.StaffIndex)
		}

		var categories []roster.Category
		if row.Categories != "" {
			for _, c := range strings.Split(row.Categories, ",") {
				categories = append(categories, roster.Category(c))
			}
		}
		members[i] = roster.StaffMember{Name: row.StaffName, Team: row.Team, Categories: categories}

		if row.Offset != db.NoOffset {
			offsets[i] = row.Offset
		}

		labels := strings.Fields(row.Codes)
		if len(labels) != run.Days {
			return nil, fmt.Errorf("run %s: staff %s has %d days, expected %d", run.ID, row.StaffName, len(labels), run.Days)
		}

		cells[i] = make([]roster.ShiftCode, len(labels))
		for day, label := range labels {
			code, err := roster.ParseShiftCode(label)
			if err != nil {
				return nil, fmt.Errorf("run %s: staff %s day %d: %w", run.ID, row.StaffName, day+1, err)
			}
			cells[i][day] = code
			if code == roster.Vacation {
				vacations = append(vacations, roster.Cell{Staff: i, Day: day})
			}
		}
	}

	problem, err := roster.NewProblem(roster.NewStaffRoster(members), run.Days, roster.NewVacationMask(vacations...), offsets)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}

	grid, err := roster.NewGrid(problem, cells)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return grid, nil
}
