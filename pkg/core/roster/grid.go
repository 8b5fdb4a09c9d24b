package roster

import (
	"fmt"
	"math/rand/v2"
)

// Grid is an immutable staff × day matrix of shift codes, tied to the Problem
// it was built for. Every vacation cell of the problem holds Vacation.
type Grid struct {
	problem *Problem
	cells   [][]ShiftCode
}

// NewGrid builds a grid from an explicit cell matrix indexed [staff][day].
// The matrix is copied and checked against the problem's dimensions and
// vacation mask.
func NewGrid(problem *Problem, cells [][]ShiftCode) (*Grid, error) {
	if problem == nil {
		return nil, fmt.Errorf("%w: grid requires a problem", ErrInvalidDimensions)
	}
	if len(cells) != problem.StaffCount() {
		return nil, fmt.Errorf("%w: expected %d staff rows, got %d", ErrInvalidDimensions, problem.StaffCount(), len(cells))
	}

	copied := make([][]ShiftCode, len(cells))
	for s, row := range cells {
		if len(row) != problem.DayCount() {
			return nil, fmt.Errorf("%w: staff %d has %d days, expected %d", ErrInvalidDimensions, s, len(row), problem.DayCount())
		}
		for d, code := range row {
			if code < DayLead || code > Vacation {
				return nil, fmt.Errorf("%w: staff %d day %d has unknown code %d", ErrInvalidInput, s, d, int(code))
			}
			if problem.IsVacation(s, d) && code != Vacation {
				return nil, fmt.Errorf("%w: staff %d day %d is a fixed vacation but holds %s", ErrInvalidInput, s, d, code)
			}
		}
		copied[s] = append([]ShiftCode(nil), row...)
	}

	return &Grid{problem: problem, cells: copied}, nil
}

// Seed synthesizes a grid for the problem using the Initializer
func Seed(problem *Problem, rng *rand.Rand) (*Grid, error) {
	if problem == nil {
		return nil, fmt.Errorf("%w: grid requires a problem", ErrInvalidDimensions)
	}
	return NewInitializer(problem).Build(rng), nil
}

func (g *Grid) Problem() *Problem {
	return g.problem
}

func (g *Grid) StaffCount() int {
	return len(g.cells)
}

func (g *Grid) DayCount() int {
	return g.problem.DayCount()
}

// At returns the code of a single cell
func (g *Grid) At(staff, day int) ShiftCode {
	return g.cells[staff][day]
}

// Row returns a copy of a staff member's codes across all days
func (g *Grid) Row(staff int) []ShiftCode {
	return append([]ShiftCode(nil), g.cells[staff]...)
}

// Column returns a copy of every staff member's code on one day
func (g *Grid) Column(day int) []ShiftCode {
	column := make([]ShiftCode, len(g.cells))
	for s := range g.cells {
		column[s] = g.cells[s][day]
	}
	return column
}

// Cells returns a deep copy of the matrix indexed [staff][day]
func (g *Grid) Cells() [][]ShiftCode {
	return cloneCells(g.cells)
}

// Equal reports whether two grids hold the same codes
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || len(g.cells) != len(other.cells) {
		return false
	}
	for s := range g.cells {
		if len(g.cells[s]) != len(other.cells[s]) {
			return false
		}
		for d := range g.cells[s] {
			if g.cells[s][d] != other.cells[s][d] {
				return false
			}
		}
	}
	return true
}

func cloneCells(cells [][]ShiftCode) [][]ShiftCode {
	copied := make([][]ShiftCode, len(cells))
	for s, row := range cells {
		copied[s] = append([]ShiftCode(nil), row...)
	}
	return copied
}
