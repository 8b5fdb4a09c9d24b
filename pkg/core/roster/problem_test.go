package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblem_Valid(t *testing.T) {
	staff := newTestStaff([]Category{SystemRole}, []Category{SecurityRole})
	vacations := NewVacationMask(Cell{Staff: 1, Day: 2})
	offsets := RotationOffsets{0: 3}

	problem, err := NewProblem(staff, 5, vacations, offsets)
	require.NoError(t, err)

	assert.Equal(t, 2, problem.StaffCount())
	assert.Equal(t, 5, problem.DayCount())
	assert.True(t, problem.IsVacation(1, 2))
	assert.False(t, problem.IsVacation(0, 2))
	assert.True(t, problem.VacationNextDay(1, 1))
	assert.False(t, problem.VacationNextDay(1, 4))

	offset, ok := problem.Offset(0)
	assert.True(t, ok)
	assert.Equal(t, 3, offset)
	_, ok = problem.Offset(1)
	assert.False(t, ok)
}

func TestNewProblem_InputsAreCopied(t *testing.T) {
	staff := newTestStaff([]Category{SystemRole})
	vacations := NewVacationMask(Cell{Staff: 0, Day: 0})
	offsets := RotationOffsets{0: 1}

	problem, err := NewProblem(staff, 2, vacations, offsets)
	require.NoError(t, err)

	vacations[Cell{Staff: 0, Day: 1}] = struct{}{}
	offsets[0] = 2

	assert.False(t, problem.IsVacation(0, 1))
	offset, _ := problem.Offset(0)
	assert.Equal(t, 1, offset)
}

func TestNewProblem_Errors(t *testing.T) {
	staff := newTestStaff([]Category{SystemRole}, []Category{SecurityRole})

	tests := []struct {
		name      string
		staff     *StaffRoster
		dayCount  int
		vacations VacationMask
		offsets   RotationOffsets
		wantErr   error
	}{
		{
			name:     "no staff",
			staff:    NewStaffRoster(nil),
			dayCount: 3,
			wantErr:  ErrInvalidDimensions,
		},
		{
			name:     "nil staff",
			staff:    nil,
			dayCount: 3,
			wantErr:  ErrInvalidDimensions,
		},
		{
			name:     "zero days",
			staff:    staff,
			dayCount: 0,
			wantErr:  ErrInvalidDimensions,
		},
		{
			name:     "negative days",
			staff:    staff,
			dayCount: -4,
			wantErr:  ErrInvalidDimensions,
		},
		{
			name:      "vacation staff out of range",
			staff:     staff,
			dayCount:  3,
			vacations: NewVacationMask(Cell{Staff: 2, Day: 0}),
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "vacation day out of range",
			staff:     staff,
			dayCount:  3,
			vacations: NewVacationMask(Cell{Staff: 0, Day: 3}),
			wantErr:   ErrInvalidInput,
		},
		{
			name:     "offset for unknown staff",
			staff:    staff,
			dayCount: 3,
			offsets:  RotationOffsets{5: 0},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "offset out of cycle",
			staff:    staff,
			dayCount: 3,
			offsets:  RotationOffsets{0: 4},
			wantErr:  ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProblem(tt.staff, tt.dayCount, tt.vacations, tt.offsets)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestVacationMask_CellsSorted(t *testing.T) {
	mask := NewVacationMask(Cell{Staff: 1, Day: 0}, Cell{Staff: 0, Day: 3}, Cell{Staff: 0, Day: 1})
	assert.Equal(t, []Cell{{0, 1}, {0, 3}, {1, 0}}, mask.Cells())
}

func TestStaffRoster_LeadPriority(t *testing.T) {
	staff := newTestStaff(
		[]Category{SystemRole, RegularTeamMember},
		[]Category{SecurityRole, SupportMember},
	)
	assert.Equal(t, 1, staff.LeadPriority(0))
	assert.Equal(t, 0, staff.LeadPriority(1))
	assert.Equal(t, []string{"staff-0", "staff-1"}, staff.Names())
}

func TestExpectedSymbol(t *testing.T) {
	assert.Equal(t, PatternDay, ExpectedSymbol(0, 0))
	assert.Equal(t, PatternNight, ExpectedSymbol(0, 1))
	assert.Equal(t, PatternRest, ExpectedSymbol(0, 2))
	assert.Equal(t, PatternRest, ExpectedSymbol(0, 3))
	assert.Equal(t, PatternDay, ExpectedSymbol(0, 4))
	assert.Equal(t, PatternNight, ExpectedSymbol(2, 3))
	assert.Equal(t, PatternNight, ExpectedSymbol(1, 0))
}

func TestShiftCode_Groups(t *testing.T) {
	assert.True(t, DayLead.IsDayWorking())
	assert.True(t, Day.IsDayWorking())
	assert.True(t, NightLead.IsNightWorking())
	assert.True(t, Night.IsNightWorking())
	assert.False(t, Rest.IsWorking())
	assert.True(t, Vacation.IsOff())
	assert.Equal(t, 8, DayLead.Hours())
	assert.Equal(t, 13, Night.Hours())
	assert.Equal(t, 0, Vacation.Hours())

	for _, code := range []ShiftCode{DayLead, Day, NightLead, Night, Rest, Vacation} {
		parsed, err := ParseShiftCode(code.String())
		require.NoError(t, err)
		assert.Equal(t, code, parsed)
	}

	_, err := ParseShiftCode("X")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
