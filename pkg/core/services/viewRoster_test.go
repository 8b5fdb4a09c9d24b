package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/db"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	grid := buildTestGrid(t, publishTestStaff(), roster.RotationOffsets{0: 2, 3: 1},
		[]string{"DL", "NL", "R", "V"},
		[]string{"D", "R", "R", "R"},
		[]string{"R", "N", "R", "DL"},
		[]string{"V", "V", "D", "N"},
	)
	run := db.RosterRun{ID: "run-1", PeriodStart: "2025-03-01", Days: 4, StaffCount: 4}

	rows := encodeRows(run.ID, grid)
	require.Len(t, rows, 4)
	assert.Equal(t, "DL NL R V", rows[0].Codes)
	assert.Equal(t, "system,team", rows[0].Categories)
	assert.Equal(t, 2, rows[0].Offset)
	assert.Equal(t, db.NoOffset, rows[1].Offset)

	decoded, err := decodeGrid(run, rows)
	require.NoError(t, err)
	assert.True(t, grid.Equal(decoded))
	assert.True(t, decoded.Problem().IsVacation(3, 0))
	assert.True(t, decoded.Problem().IsVacation(0, 3))
	offset, ok := decoded.Problem().Offset(3)
	require.True(t, ok)
	assert.Equal(t, 1, offset)
	assert.Equal(t, "sup-sec", decoded.Problem().Staff().Member(3).Name)
}

func TestDecodeGrid_Errors(t *testing.T) {
	good := func() []db.RosterRow {
		return []db.RosterRow{
			{RunID: "r", StaffIndex: 0, StaffName: "a", Categories: "system", Offset: db.NoOffset, Codes: "D R"},
			{RunID: "r", StaffIndex: 1, StaffName: "b", Categories: "security", Offset: 0, Codes: "N R"},
		}
	}
	run := db.RosterRun{ID: "r", Days: 2, StaffCount: 2}

	tests := []struct {
		name    string
		mutate  func(rows []db.RosterRow) []db.RosterRow
		wantErr string
	}{
		{"missing row", func(rows []db.RosterRow) []db.RosterRow { return rows[:1] }, "incomplete"},
		{"index gap", func(rows []db.RosterRow) []db.RosterRow { rows[1].StaffIndex = 2; return rows }, "expected staff index 1"},
		{"short codes", func(rows []db.RosterRow) []db.RosterRow { rows[0].Codes = "D"; return rows }, "has 1 days, expected 2"},
		{"unknown code", func(rows []db.RosterRow) []db.RosterRow { rows[0].Codes = "D X"; return rows }, "unknown shift code"},
		{"bad offset", func(rows []db.RosterRow) []db.RosterRow { rows[1].Offset = 7; return rows }, "rotation offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeGrid(run, tt.mutate(good()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRoster_NoRuns(t *testing.T) {
	_, err := LoadRoster(context.Background(), newMockRosterStore(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no roster runs found")
}

func TestLoadRoster_StoreError(t *testing.T) {
	store := newMockRosterStore()
	store.getRunsErr = errStore

	_, err := LoadRoster(context.Background(), store, nil, "")
	assert.ErrorIs(t, err, errStore)
}

func TestViewRoster(t *testing.T) {
	store, generated := storeWithGeneratedRun(t)
	evaluator := fitness.NewEvaluator(WeightsFromConfig(testConfig()))

	view, err := ViewRoster(context.Background(), store, evaluator, zap.NewNop(), generated.Run.ID)
	require.NoError(t, err)

	assert.Equal(t, generated.Run.ID, view.Run.ID)
	assert.True(t, generated.Grid.Equal(view.Grid))
	assert.Equal(t, generated.Breakdown, view.Breakdown)
	assert.Len(t, view.Hours, 6)
	assert.Equal(t, generated.Run.Score, evaluator.Score(view.Grid))
}
