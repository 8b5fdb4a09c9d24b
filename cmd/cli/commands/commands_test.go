package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

func testApp() *AppContext {
	threshold := 1e9
	return &AppContext{
		Env:    "test",
		Logger: zap.NewNop(),
		Ctx:    context.Background(),
		Cfg: &config.Config{
			PeriodStart: "2025-01-01",
			Days:        5,
			Staff: []config.StaffConfig{
				{Name: "a-sys", Team: "A", Categories: []string{"system", "team"}, RotationStart: "day"},
				{Name: "a-sec", Team: "A", Categories: []string{"security", "team"}, RotationStart: "day"},
				{Name: "sup-sys", Categories: []string{"system", "support"}},
				{Name: "sup-sec", Categories: []string{"security", "support"}},
			},
			Vacations: []config.VacationConfig{
				{Staff: "sup-sec", From: 1, To: 2},
				{Staff: "sup-sec", From: 5},
			},
			Search: config.SearchConfig{
				PopulationSize:   6,
				GenerationLimit:  3,
				SuccessThreshold: &threshold,
				Workers:          1,
			},
		},
	}
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCmd_DryRun(t *testing.T) {
	out, err := runCommand(t, GenerateCmd(testApp()), "--dry-run", "--seed", "11")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run, roster not saved")
	assert.Contains(t, out, "Seed:        11")
	assert.Contains(t, out, "a-sys")
	assert.Contains(t, out, "RoleBalance")
}

func TestGenerateCmd_PublishWithDryRun(t *testing.T) {
	_, err := runCommand(t, GenerateCmd(testApp()), "--dry-run", "--publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--publish cannot be combined")
}

func TestGenerateCmd_NoStoreConfigured(t *testing.T) {
	_, err := runCommand(t, GenerateCmd(testApp()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run store configured")
}

func TestStaffCmd(t *testing.T) {
	out, err := runCommand(t, StaffCmd(testApp()))
	require.NoError(t, err)

	assert.Contains(t, out, "Staff for 5 days from 2025-01-01")
	assert.Contains(t, out, "system,support")
	lines := strings.Split(out, "\n")
	var supSec string
	for _, line := range lines {
		if strings.Contains(line, "sup-sec") {
			supSec = line
		}
	}
	assert.True(t, strings.HasSuffix(supSec, "1-2, 5"), supSec)
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		days     []int
		expected string
	}{
		{nil, "-"},
		{[]int{4}, "4"},
		{[]int{1, 2, 3}, "1-3"},
		{[]int{1, 2, 5, 7, 8}, "1-2, 5, 7-8"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDays(tt.days))
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
		wantErr  bool
	}{
		{line: "generate --dry-run", expected: []string{"generate", "--dry-run"}},
		{line: "  view   abc  ", expected: []string{"view", "abc"}},
		{line: `publish "run 1"`, expected: []string{"publish", "run 1"}},
		{line: `view ''`, expected: []string{"view", ""}},
		{line: "", expected: nil},
		{line: `view "abc`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSession(t *testing.T) {
	var calls []string
	var flagValue bool

	root := &cobra.Command{Use: "roster"}
	echo := &cobra.Command{
		Use:   "echo [word]",
		Short: "Echo a word",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calls = append(calls, strings.Join(args, ",")+"|"+map[bool]string{true: "loud", false: "quiet"}[flagValue])
			return nil
		},
	}
	echo.Flags().BoolVar(&flagValue, "loud", false, "")
	root.AddCommand(echo, InteractiveCmd(&AppContext{}))

	var out bytes.Buffer
	s := newSession(root, &out)
	assert.NotContains(t, s.commands, "interactive")

	input := "echo hi --loud\necho\necho a b\nbogus\nhelp\nexit\necho never\n"
	require.NoError(t, s.run(strings.NewReader(input)))

	assert.Equal(t, []string{"hi|loud", "|quiet"}, calls)
	assert.Contains(t, out.String(), "accepts at most 1 arg")
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "echo [word]")
}

func TestPrintRoster_PostNightLabel(t *testing.T) {
	staff := roster.NewStaffRoster([]roster.StaffMember{{Name: "ann"}, {Name: "bea"}})
	problem, err := roster.NewProblem(staff, 3, nil, nil)
	require.NoError(t, err)
	grid, err := roster.NewGrid(problem, [][]roster.ShiftCode{
		{roster.NightLead, roster.Rest, roster.Rest},
		{roster.DayLead, roster.Night, roster.Rest},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	printRoster(&out, grid, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	text := out.String()

	assert.Contains(t, text, "We Th Fr")
	assert.Contains(t, text, colorRed+"  P"+colorReset+colorDim+"  R")
	assert.Contains(t, text, "13")
	assert.Contains(t, text, "21")
}

func TestPrintViolations(t *testing.T) {
	staff := roster.NewStaffRoster([]roster.StaffMember{{Name: "ann"}})
	violations := []fitness.Violation{
		{CriterionName: "RotationCycle", StaffIndex: 0, Day: 2, Units: 1, Description: "expected Night"},
		{CriterionName: "WorkingHours", StaffIndex: -1, Day: -1, Units: 4, Description: "spread"},
		{CriterionName: "RoleBalance", StaffIndex: -1, Day: 0, Units: 1, Description: "missing"},
	}

	var out bytes.Buffer
	printViolations(&out, violations, staff, 2)
	text := out.String()

	assert.Contains(t, text, "Violations (3)")
	assert.Contains(t, text, "ann")
	assert.Contains(t, text, "expected Night")
	assert.Contains(t, text, "1 more")
	assert.NotContains(t, text, "missing")

	out.Reset()
	printViolations(&out, nil, staff, 2)
	assert.Contains(t, out.String(), "No violations")
}
