package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-roster/pkg/sheetssql"
)

// mockSheetsClient stores each tab in memory
type mockSheetsClient struct {
	tables map[string][][]interface{}
}

func (m *mockSheetsClient) GetValues(_ context.Context, _, sheetRange string) ([][]interface{}, error) {
	name, _, _ := strings.Cut(sheetRange, "!")
	return m.tables[name], nil
}

func (m *mockSheetsClient) AppendRows(_ context.Context, _, sheetRange string, values [][]interface{}) error {
	m.tables[sheetRange] = append(m.tables[sheetRange], values...)
	return nil
}

func (m *mockSheetsClient) CreateSheet(_ context.Context, _, title string) (int64, error) {
	m.tables[title] = nil
	return 1, nil
}

func (m *mockSheetsClient) SheetTitles(_ context.Context, _ string) ([]string, error) {
	titles := make([]string, 0, len(m.tables))
	for title := range m.tables {
		titles = append(titles, title)
	}
	return titles, nil
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	schema, err := Schema()
	require.NoError(t, err)

	client := &mockSheetsClient{tables: make(map[string][][]interface{})}
	ssql, err := sheetssql.NewDB(context.Background(), client, "db-sheet", schema)
	require.NoError(t, err)
	return NewDB(ssql)
}

func TestSchema_Tables(t *testing.T) {
	schema, err := Schema()
	require.NoError(t, err)

	require.Len(t, schema.Tables, 2)
	assert.Equal(t, "roster_run", schema.Tables[0].Name)
	assert.Equal(t, "roster_row", schema.Tables[1].Name)
}

func TestInsertRosterRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	run := &RosterRun{
		ID:          "run-1",
		PeriodStart: "2025-01-01",
		Days:        3,
		StaffCount:  2,
		Seed:        12345678901234567890,
		Score:       4875.5,
		Generations: 120,
		StopReason:  "threshold",
		CreatedAt:   "2025-01-01T10:00:00Z",
	}
	rows := []RosterRow{
		{RunID: "run-1", StaffIndex: 1, StaffName: "bea", Categories: "security", Offset: NoOffset, Codes: "R NL R"},
		{RunID: "run-1", StaffIndex: 0, StaffName: "ann", Team: "A", Categories: "system,support", Offset: 2, Codes: "DL R R"},
	}
	require.NoError(t, db.InsertRosterRun(ctx, run, rows))
	require.NoError(t, db.InsertRosterRun(ctx, &RosterRun{ID: "run-2"}, []RosterRow{{RunID: "run-2", Codes: "V"}}))

	runs, err := db.GetRosterRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, *run, runs[0])

	got, err := db.GetRosterRows(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ann", got[0].StaffName)
	assert.Equal(t, 2, got[0].Offset)
	assert.Equal(t, "bea", got[1].StaffName)
	assert.Equal(t, NoOffset, got[1].Offset)
}

func TestGetRosterRows_UnknownRun(t *testing.T) {
	db := newTestDB(t)
	rows, err := db.GetRosterRows(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSetRunPublishedDatetime_NoOp(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.SetRunPublishedDatetime(context.Background(), "run-1", time.Now()))
}

func TestLatestRun(t *testing.T) {
	runs := []RosterRun{
		{ID: "a", CreatedAt: "2025-01-01T10:00:00Z"},
		{ID: "b", CreatedAt: "2025-01-03T10:00:00Z"},
		{ID: "c", CreatedAt: "not a time"},
		{ID: "d", CreatedAt: "2025-01-02T10:00:00Z"},
	}

	latest, ok := LatestRun(runs)
	require.True(t, ok)
	assert.Equal(t, "b", latest.ID)

	_, ok = LatestRun(nil)
	assert.False(t, ok)
}

func TestFindRun(t *testing.T) {
	runs := []RosterRun{{ID: "a"}, {ID: "b"}}

	run, ok := FindRun(runs, "b")
	require.True(t, ok)
	assert.Equal(t, "b", run.ID)

	_, ok = FindRun(runs, "z")
	assert.False(t, ok)
}
