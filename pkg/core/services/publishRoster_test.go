package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/db"
)

func publishTestStaff() []roster.StaffMember {
	return []roster.StaffMember{
		{Name: "a-sys", Team: "A", Categories: []roster.Category{roster.SystemRole, roster.RegularTeamMember}},
		{Name: "b-sec", Team: "B", Categories: []roster.Category{roster.SecurityRole, roster.RegularTeamMember}},
		{Name: "sup-sys", Categories: []roster.Category{roster.SystemRole, roster.SupportMember}},
		{Name: "sup-sec", Categories: []roster.Category{roster.SecurityRole, roster.SupportMember}},
	}
}

func TestBuildPublishedRoster(t *testing.T) {
	grid := buildTestGrid(t, publishTestStaff(), roster.RotationOffsets{0: 1, 1: 0},
		[]string{"NL", "R", "R", "DL", "N"},
		[]string{"DL", "N", "R", "V", "V"},
		[]string{"D", "NL", "R", "R", "D"},
		[]string{"R", "R", "D", "N", "R"},
	)
	run := db.RosterRun{ID: "run-1", PeriodStart: "2025-01-01"}

	published, err := BuildPublishedRoster(run, grid)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), published.StartDate)
	assert.Equal(t, 5, published.Days)

	require.Len(t, published.Reference, 2)
	assert.Equal(t, sheetsclient.ReferenceRow{Label: "[A]", Cells: []string{"N", "P", "R", "D", "N"}}, published.Reference[0])
	assert.Equal(t, sheetsclient.ReferenceRow{Label: "[B]", Cells: []string{"D", "N", "P", "R", "D"}}, published.Reference[1])

	require.Len(t, published.Rows, 4)

	a := published.Rows[0]
	assert.Equal(t, "a-sys", a.Name)
	assert.Equal(t, sheetsclient.StyleTeamA, a.Style)
	assert.Equal(t, []string{"NL", "P", "R", "DL", "N"}, a.Cells)
	assert.Equal(t, 0, a.Vacation)
	assert.Equal(t, 1, a.DayShifts)
	assert.Equal(t, 2, a.NightShifts)
	assert.Equal(t, 8+2*13, a.Hours)

	b := published.Rows[1]
	assert.Equal(t, sheetsclient.StyleTeamB, b.Style)
	assert.Equal(t, []string{"DL", "N", "P", "V", "V"}, b.Cells)
	assert.Equal(t, 2, b.Vacation)
	assert.Equal(t, 21, b.Hours)

	assert.Equal(t, sheetsclient.StyleSystemSupport, published.Rows[2].Style)
	assert.Equal(t, sheetsclient.StyleSecuritySupport, published.Rows[3].Style)
	assert.Equal(t, []string{"R", "R", "D", "N", "P"}, published.Rows[3].Cells)
}

func TestBuildPublishedRoster_BadPeriodStart(t *testing.T) {
	grid := buildTestGrid(t, publishTestStaff()[:1], nil, []string{"D"})
	_, err := BuildPublishedRoster(db.RosterRun{PeriodStart: "01/01/2025"}, grid)
	require.Error(t, err)
}

func TestReferenceRows_TeamWithoutOffsetSkipped(t *testing.T) {
	grid := buildTestGrid(t, publishTestStaff(), roster.RotationOffsets{1: 3},
		[]string{"D"}, []string{"R"}, []string{"R"}, []string{"N"},
	)

	refs := referenceRows(grid.Problem(), teamOrder(grid.Problem()))
	require.Len(t, refs, 1)
	assert.Equal(t, "[B]", refs[0].Label)
	assert.Equal(t, []string{"R"}, refs[0].Cells)
}

func TestRowStyle(t *testing.T) {
	teams := map[string]int{"A": 0, "B": 1, "C": 2}
	tests := []struct {
		name     string
		member   roster.StaffMember
		expected sheetsclient.RowStyle
	}{
		{"first team", roster.StaffMember{Team: "A"}, sheetsclient.StyleTeamA},
		{"second team", roster.StaffMember{Team: "B"}, sheetsclient.StyleTeamB},
		{"third team", roster.StaffMember{Team: "C"}, sheetsclient.StyleTeamA},
		{"no team", roster.StaffMember{}, sheetsclient.StylePlain},
		{"system support", roster.StaffMember{Team: "A", Categories: []roster.Category{roster.SupportMember, roster.SystemRole}}, sheetsclient.StyleSystemSupport},
		{"security support", roster.StaffMember{Categories: []roster.Category{roster.SupportMember, roster.SecurityRole}}, sheetsclient.StyleSecuritySupport},
		{"support without role", roster.StaffMember{Categories: []roster.Category{roster.SupportMember}}, sheetsclient.StylePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rowStyle(tt.member, teams))
		})
	}
}

func storeWithGeneratedRun(t *testing.T) (*mockRosterStore, *GenerateResult) {
	t.Helper()
	store := newMockRosterStore()
	result, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateOptions{Seed: seedPtr(5)})
	require.NoError(t, err)
	return store, result
}

func TestPublishRoster_Success(t *testing.T) {
	store, generated := storeWithGeneratedRun(t)
	publisher := &mockPublisher{}

	result, err := PublishRoster(context.Background(), store, publisher, testConfig(), zap.NewNop(), generated.Run.ID)
	require.NoError(t, err)

	assert.Equal(t, "tab", result.TabTitle)
	assert.Equal(t, generated.Run.ID, result.Run.ID)
	assert.Equal(t, "roster-sheet", publisher.spreadsheetID)
	require.NotNil(t, publisher.roster)
	assert.Len(t, publisher.roster.Rows, 6)
	assert.Len(t, publisher.roster.Reference, 2)
	assert.Contains(t, store.published, generated.Run.ID)
}

func TestPublishRoster_DefaultsToLatestRun(t *testing.T) {
	store, _ := storeWithGeneratedRun(t)

	now = func() time.Time { return time.Now().Add(time.Hour) }
	defer func() { now = time.Now }()
	latest, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateOptions{Seed: seedPtr(6)})
	require.NoError(t, err)

	result, err := PublishRoster(context.Background(), store, &mockPublisher{}, testConfig(), zap.NewNop(), "")
	require.NoError(t, err)
	assert.Equal(t, latest.Run.ID, result.Run.ID)
}

func TestPublishRoster_Errors(t *testing.T) {
	store, generated := storeWithGeneratedRun(t)

	t.Run("missing sheet id", func(t *testing.T) {
		cfg := testConfig()
		cfg.RosterSheetID = ""
		_, err := PublishRoster(context.Background(), store, &mockPublisher{}, cfg, nil, generated.Run.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rosterSheetID")
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := PublishRoster(context.Background(), store, &mockPublisher{}, testConfig(), nil, "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "roster run not found")
	})

	t.Run("publisher failure", func(t *testing.T) {
		publisher := &mockPublisher{err: errors.New("quota exceeded")}
		_, err := PublishRoster(context.Background(), store, publisher, testConfig(), nil, generated.Run.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}
