package roster

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutate_ParentUnchanged(t *testing.T) {
	problem := newSixteenStaffProblem(t, 10, nil)
	parent, err := Seed(problem, newTestRNG(1))
	require.NoError(t, err)
	snapshot := parent.Cells()

	child := Mutate(parent, 1.0, newTestRNG(2))

	assert.Equal(t, snapshot, parent.Cells())
	assert.NotSame(t, parent, child)
}

func TestMutate_ZeroRateCopies(t *testing.T) {
	problem := newSixteenStaffProblem(t, 10, nil)
	parent, err := Seed(problem, newTestRNG(1))
	require.NoError(t, err)

	child := Mutate(parent, 0, newTestRNG(2))
	assert.True(t, parent.Equal(child))
}

func TestMutate_VacationInvariance(t *testing.T) {
	vacations := NewVacationMask(
		Cell{Staff: 0, Day: 0}, Cell{Staff: 0, Day: 1},
		Cell{Staff: 5, Day: 4}, Cell{Staff: 12, Day: 9},
	)
	problem := newSixteenStaffProblem(t, 10, vacations)
	grid, err := Seed(problem, newTestRNG(4))
	require.NoError(t, err)

	rng := newTestRNG(5)
	for i := 0; i < 200; i++ {
		grid = Mutate(grid, 0.5, rng)
		for cell := range vacations {
			require.Equal(t, Vacation, grid.At(cell.Staff, cell.Day))
		}
	}
}

func TestMutate_Locality(t *testing.T) {
	vacations := NewVacationMask(Cell{Staff: 2, Day: 3})
	problem := newSixteenStaffProblem(t, 12, vacations)
	parent, err := Seed(problem, newTestRNG(8))
	require.NoError(t, err)

	for seed := uint64(0); seed < 30; seed++ {
		child := Mutate(parent, 1.0, newTestRNG(seed))

		for d := 0; d < parent.DayCount(); d++ {
			before := parent.Column(d)
			after := child.Column(d)

			var changed []int
			for s := range before {
				if before[s] != after[s] {
					changed = append(changed, s)
				}
			}

			// Either untouched or exactly one swap of two distinct codes
			require.Contains(t, []int{0, 2}, len(changed), "day %d", d)
			if len(changed) == 2 {
				a, b := changed[0], changed[1]
				assert.Equal(t, before[a], after[b])
				assert.Equal(t, before[b], after[a])
				assert.NotEqual(t, Vacation, before[a])
				assert.NotEqual(t, Vacation, before[b])
			}

			slices.Sort(before)
			slices.Sort(after)
			assert.Equal(t, before, after)
		}
	}
}

func TestMutate_TooFewSwappable(t *testing.T) {
	staff := newTestStaff(nil, nil)
	problem, err := NewProblem(staff, 2, NewVacationMask(Cell{Staff: 0, Day: 0}, Cell{Staff: 0, Day: 1}), nil)
	require.NoError(t, err)

	grid, err := NewGrid(problem, [][]ShiftCode{{Vacation, Vacation}, {Day, Rest}})
	require.NoError(t, err)

	child := Mutate(grid, 1.0, newTestRNG(1))
	assert.True(t, grid.Equal(child))
}
