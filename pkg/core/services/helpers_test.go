package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/db"
)

type mockRosterStore struct {
	runs       []db.RosterRun
	rows       map[string][]db.RosterRow
	published  map[string]time.Time
	insertErr  error
	getRunsErr error
}

func newMockRosterStore() *mockRosterStore {
	return &mockRosterStore{
		rows:      make(map[string][]db.RosterRow),
		published: make(map[string]time.Time),
	}
}

func (m *mockRosterStore) GetRosterRuns(ctx context.Context) ([]db.RosterRun, error) {
	if m.getRunsErr != nil {
		return nil, m.getRunsErr
	}
	return m.runs, nil
}

func (m *mockRosterStore) GetRosterRows(ctx context.Context, runID string) ([]db.RosterRow, error) {
	return m.rows[runID], nil
}

func (m *mockRosterStore) InsertRosterRun(ctx context.Context, run *db.RosterRun, rows []db.RosterRow) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.runs = append(m.runs, *run)
	m.rows[run.ID] = rows
	return nil
}

func (m *mockRosterStore) SetRunPublishedDatetime(ctx context.Context, runID string, datetime time.Time) error {
	m.published[runID] = datetime
	return nil
}

type mockPublisher struct {
	spreadsheetID string
	roster        *sheetsclient.PublishedRoster
	err           error
}

func (m *mockPublisher) PublishRoster(ctx context.Context, spreadsheetID string, r *sheetsclient.PublishedRoster) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.spreadsheetID = spreadsheetID
	m.roster = r
	return "tab", nil
}

var errStore = errors.New("store unavailable")

func float64Ptr(v float64) *float64 {
	return &v
}

// testConfig is a small period that searches in a few milliseconds
func testConfig() *config.Config {
	return &config.Config{
		PeriodStart: "2025-01-01",
		Days:        8,
		Staff: []config.StaffConfig{
			{Name: "a-sys", Team: "A", Categories: []string{"system", "team"}, RotationStart: "night"},
			{Name: "a-sec", Team: "A", Categories: []string{"security", "team"}, RotationStart: "night"},
			{Name: "b-sys", Team: "B", Categories: []string{"system", "team"}, RotationStart: "day"},
			{Name: "b-sec", Team: "B", Categories: []string{"security", "team"}, RotationStart: "day"},
			{Name: "sup-sys", Categories: []string{"system", "support"}},
			{Name: "sup-sec", Categories: []string{"security", "support"}},
		},
		Vacations: []config.VacationConfig{
			{Staff: "b-sec", From: 3, To: 4},
		},
		Search: config.SearchConfig{
			PopulationSize:   8,
			GenerationLimit:  5,
			SuccessThreshold: float64Ptr(1e9),
			Workers:          2,
		},
		RosterSheetID: "roster-sheet",
	}
}

// buildTestGrid parses one space separated row of labels per staff member
func buildTestGrid(t *testing.T, staff []roster.StaffMember, offsets roster.RotationOffsets, rows ...[]string) *roster.Grid {
	t.Helper()

	cells := make([][]roster.ShiftCode, len(rows))
	var vacations []roster.Cell
	for s, labels := range rows {
		cells[s] = make([]roster.ShiftCode, len(labels))
		for d, label := range labels {
			code, err := roster.ParseShiftCode(label)
			require.NoError(t, err)
			cells[s][d] = code
			if code == roster.Vacation {
				vacations = append(vacations, roster.Cell{Staff: s, Day: d})
			}
		}
	}

	problem, err := roster.NewProblem(roster.NewStaffRoster(staff), len(rows[0]), roster.NewVacationMask(vacations...), offsets)
	require.NoError(t, err)
	grid, err := roster.NewGrid(problem, cells)
	require.NoError(t, err)
	return grid
}
