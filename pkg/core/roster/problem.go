package roster

import (
	"fmt"
	"maps"
	"slices"
)

// Cell addresses a single (staff, day) slot of a grid
type Cell struct {
	Staff int
	Day   int
}

// VacationMask is the set of cells fixed to Vacation
type VacationMask map[Cell]struct{}

// NewVacationMask builds a mask from a list of cells
func NewVacationMask(cells ...Cell) VacationMask {
	mask := make(VacationMask, len(cells))
	for _, c := range cells {
		mask[c] = struct{}{}
	}
	return mask
}

// Contains reports whether the staff member is on vacation on the day
func (m VacationMask) Contains(staff, day int) bool {
	_, ok := m[Cell{Staff: staff, Day: day}]
	return ok
}

// Cells returns the mask cells ordered by staff then day
func (m VacationMask) Cells() []Cell {
	cells := slices.Collect(maps.Keys(m))
	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Staff != b.Staff {
			return a.Staff - b.Staff
		}
		return a.Day - b.Day
	})
	return cells
}

// RotationOffsets maps staff index to its phase within CyclePattern
type RotationOffsets map[int]int

// Problem bundles everything the scheduler consumes: the staff pool, the
// horizon, the fixed vacations and the rotation phases
type Problem struct {
	staff     *StaffRoster
	dayCount  int
	vacations VacationMask
	offsets   RotationOffsets
}

// NewProblem validates and copies the inputs. Dimensions must be positive and
// every mask cell and offset must reference an existing staff member and day.
func NewProblem(staff *StaffRoster, dayCount int, vacations VacationMask, offsets RotationOffsets) (*Problem, error) {
	if staff == nil || staff.Len() <= 0 {
		return nil, fmt.Errorf("%w: staff count must be positive", ErrInvalidDimensions)
	}
	if dayCount <= 0 {
		return nil, fmt.Errorf("%w: day count must be positive, got %d", ErrInvalidDimensions, dayCount)
	}

	for cell := range vacations {
		if cell.Staff < 0 || cell.Staff >= staff.Len() || cell.Day < 0 || cell.Day >= dayCount {
			return nil, fmt.Errorf("%w: vacation cell (staff %d, day %d) out of range", ErrInvalidInput, cell.Staff, cell.Day)
		}
	}

	for staffIdx, offset := range offsets {
		if staffIdx < 0 || staffIdx >= staff.Len() {
			return nil, fmt.Errorf("%w: rotation offset for unknown staff %d", ErrInvalidInput, staffIdx)
		}
		if offset < 0 || offset >= CycleLength {
			return nil, fmt.Errorf("%w: rotation offset %d for staff %d not in [0,%d]", ErrInvalidInput, offset, staffIdx, CycleLength-1)
		}
	}

	return &Problem{
		staff:     staff,
		dayCount:  dayCount,
		vacations: maps.Clone(vacations),
		offsets:   maps.Clone(offsets),
	}, nil
}

func (p *Problem) Staff() *StaffRoster {
	return p.staff
}

func (p *Problem) StaffCount() int {
	return p.staff.Len()
}

func (p *Problem) DayCount() int {
	return p.dayCount
}

// IsVacation reports whether the cell is fixed to Vacation
func (p *Problem) IsVacation(staff, day int) bool {
	return p.vacations.Contains(staff, day)
}

// VacationNextDay reports whether the staff member is on vacation the day
// after the given day. The day after the horizon is never a vacation.
func (p *Problem) VacationNextDay(staff, day int) bool {
	return day+1 < p.dayCount && p.vacations.Contains(staff, day+1)
}

// Offset returns the rotation offset of a staff member, if it has one
func (p *Problem) Offset(staff int) (int, bool) {
	offset, ok := p.offsets[staff]
	return offset, ok
}

// Vacations returns a copy of the vacation mask
func (p *Problem) Vacations() VacationMask {
	return maps.Clone(p.vacations)
}

// Offsets returns a copy of the rotation offsets
func (p *Problem) Offsets() RotationOffsets {
	return maps.Clone(p.offsets)
}
