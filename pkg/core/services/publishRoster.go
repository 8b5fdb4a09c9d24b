package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/db"
)

// RosterPublisher writes a laid out roster to a spreadsheet
type RosterPublisher interface {
	PublishRoster(ctx context.Context, spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error)
}

// PublishResult represents the outcome of publishing a run
type PublishResult struct {
	Run      db.RosterRun
	TabTitle string
	Roster   *sheetsclient.PublishedRoster
}

// visualCycle is the reference rotation as displayed, indexed by cycle
// position: day, night, post-night rest, rest
var visualCycle = [roster.CycleLength]string{"D", "N", sheetsclient.PostNightLabel, "R"}

// PublishRoster loads a run (the latest when runID is empty) and writes it to
// the configured roster spreadsheet
func PublishRoster(ctx context.Context, store db.Database, publisher RosterPublisher, cfg *config.Config, logger *zap.Logger, runID string) (*PublishResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RosterSheetID == "" {
		return nil, fmt.Errorf("rosterSheetID is not configured")
	}

	stored, err := LoadRoster(ctx, store, logger, runID)
	if err != nil {
		return nil, err
	}

	published, err := BuildPublishedRoster(stored.Run, stored.Grid)
	if err != nil {
		return nil, err
	}

	logger.Debug("Publishing roster",
		zap.String("run_id", stored.Run.ID),
		zap.Int("reference_rows", len(published.Reference)),
		zap.Int("staff_rows", len(published.Rows)))

	tabTitle, err := publisher.PublishRoster(ctx, cfg.RosterSheetID, published)
	if err != nil {
		return nil, fmt.Errorf("failed to publish roster: %w", err)
	}

	if err := store.SetRunPublishedDatetime(ctx, stored.Run.ID, now()); err != nil {
		logger.Warn("Failed to record publish time", zap.String("run_id", stored.Run.ID), zap.Error(err))
	}

	logger.Info("Roster published", zap.String("run_id", stored.Run.ID), zap.String("tab", tabTitle))

	return &PublishResult{
		Run:      stored.Run,
		TabTitle: tabTitle,
		Roster:   published,
	}, nil
}

// BuildPublishedRoster lays out a grid for publishing: one reference row per
// team with a rotation, then every staff row with totals
func BuildPublishedRoster(run db.RosterRun, grid *roster.Grid) (*sheetsclient.PublishedRoster, error) {
	start, err := time.Parse(config.DateLayout, run.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run period start: %w", err)
	}

	teams := teamOrder(grid.Problem())
	published := &sheetsclient.PublishedRoster{
		StartDate: start,
		Days:      grid.DayCount(),
		Reference: referenceRows(grid.Problem(), teams),
		Rows:      make([]sheetsclient.PublishedRosterRow, grid.StaffCount()),
	}

	for s := range published.Rows {
		published.Rows[s] = staffRow(grid, s, teams)
	}
	return published, nil
}

// teamOrder maps each team name to the order it first appears in
func teamOrder(problem *roster.Problem) map[string]int {
	order := make(map[string]int)
	staff := problem.Staff()
	for i := 0; i < staff.Len(); i++ {
		team := staff.Member(i).Team
		if _, seen := order[team]; team != "" && !seen {
			order[team] = len(order)
		}
	}
	return order
}

// referenceRows builds the idealised cycle of each team from the offset of
// its first member with one. Teams without any offset are skipped.
func referenceRows(problem *roster.Problem, teams map[string]int) []sheetsclient.ReferenceRow {
	staff := problem.Staff()
	refs := make([]sheetsclient.ReferenceRow, len(teams))
	found := make([]bool, len(teams))

	for i := 0; i < staff.Len(); i++ {
		team := staff.Member(i).Team
		idx, ok := teams[team]
		if !ok || found[idx] {
			continue
		}
		offset, ok := problem.Offset(i)
		if !ok {
			continue
		}

		cells := make([]string, problem.DayCount())
		for day := range cells {
			cells[day] = visualCycle[(day+offset)%roster.CycleLength]
		}
		refs[idx] = sheetsclient.ReferenceRow{Label: "[" + team + "]", Cells: cells}
		found[idx] = true
	}

	result := make([]sheetsclient.ReferenceRow, 0, len(refs))
	for i, ref := range refs {
		if found[i] {
			result = append(result, ref)
		}
	}
	return result
}

// staffRow renders one staff member. Rest after a night shift is shown as
// the post-night label.
func staffRow(grid *roster.Grid, s int, teams map[string]int) sheetsclient.PublishedRosterRow {
	member := grid.Problem().Staff().Member(s)
	row := sheetsclient.PublishedRosterRow{
		Name:  member.Name,
		Style: rowStyle(member, teams),
		Cells: make([]string, grid.DayCount()),
	}

	for day, code := range grid.Row(s) {
		label := code.String()
		if code == roster.Rest && day > 0 && grid.At(s, day-1).IsNightWorking() {
			label = sheetsclient.PostNightLabel
		}
		row.Cells[day] = label

		switch {
		case code == roster.Vacation:
			row.Vacation++
		case code.IsDayWorking():
			row.DayShifts++
		case code.IsNightWorking():
			row.NightShifts++
		}
		row.Hours += code.Hours()
	}
	return row
}

// rowStyle colours support staff by role and team members by alternating
// team order
func rowStyle(member roster.StaffMember, teams map[string]int) sheetsclient.RowStyle {
	switch {
	case member.Has(roster.SupportMember) && member.Has(roster.SystemRole):
		return sheetsclient.StyleSystemSupport
	case member.Has(roster.SupportMember) && member.Has(roster.SecurityRole):
		return sheetsclient.StyleSecuritySupport
	}

	idx, ok := teams[member.Team]
	switch {
	case !ok:
		return sheetsclient.StylePlain
	case idx%2 == 0:
		return sheetsclient.StyleTeamA
	default:
		return sheetsclient.StyleTeamB
	}
}
