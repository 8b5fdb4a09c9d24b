package roster

import (
	"math/rand/v2"
	"slices"
)

// GroupSize is the target number of staff in each working group per day
const GroupSize = 3

// Initializer builds seed grids that already respect the vacation mask, the
// rotation cycle and the rule that nobody works a night before a vacation
type Initializer struct {
	problem *Problem
}

func NewInitializer(problem *Problem) *Initializer {
	return &Initializer{problem: problem}
}

// dayPools holds the classification of staff for a single day
type dayPools struct {
	day   []int
	night []int
	off   []int
}

// Build produces a fresh grid, one day at a time. Groups smaller than
// GroupSize are accepted when not enough staff are eligible.
func (in *Initializer) Build(rng *rand.Rand) *Grid {
	p := in.problem
	cells := make([][]ShiftCode, p.StaffCount())
	assigned := make([][]bool, p.StaffCount())
	for s := range cells {
		cells[s] = make([]ShiftCode, p.DayCount())
		assigned[s] = make([]bool, p.DayCount())
	}

	for day := 0; day < p.DayCount(); day++ {
		pools := in.classify(day)
		for s := 0; s < p.StaffCount(); s++ {
			if p.IsVacation(s, day) {
				cells[s][day] = Vacation
				assigned[s][day] = true
			}
		}

		dayGroup := in.selectDayGroup(day, &pools, rng)
		nightGroup := in.selectNightGroup(day, &pools, dayGroup, rng)

		in.assignRoles(cells, assigned, day, dayGroup, DayLead, Day)
		in.assignRoles(cells, assigned, day, nightGroup, NightLead, Night)

		for s := 0; s < p.StaffCount(); s++ {
			if !assigned[s][day] {
				cells[s][day] = Rest
			}
		}
	}

	return &Grid{problem: p, cells: cells}
}

// classify sorts every non-vacation staff member into a pool using their
// expected cycle symbol. A night candidate who is on vacation tomorrow is
// moved to the off pool.
func (in *Initializer) classify(day int) dayPools {
	p := in.problem
	var pools dayPools

	for s := 0; s < p.StaffCount(); s++ {
		if p.IsVacation(s, day) {
			continue
		}

		offset, ok := p.Offset(s)
		if !ok {
			pools.off = append(pools.off, s)
			continue
		}

		switch ExpectedSymbol(offset, day) {
		case PatternDay:
			pools.day = append(pools.day, s)
		case PatternNight:
			if p.VacationNextDay(s, day) {
				pools.off = append(pools.off, s)
			} else {
				pools.night = append(pools.night, s)
			}
		default:
			pools.off = append(pools.off, s)
		}
	}

	return pools
}

func (in *Initializer) selectDayGroup(day int, pools *dayPools, rng *rand.Rand) []int {
	selected := slices.Clone(pools.day)
	shuffle(rng, selected)

	if len(selected) < GroupSize {
		shuffle(rng, pools.off)
		for len(selected) < GroupSize && len(pools.off) > 0 {
			selected = append(selected, pools.off[0])
			pools.off = pools.off[1:]
		}
	}

	// Last resort: borrow from the night pool
	if len(selected) < GroupSize {
		safe := slices.DeleteFunc(slices.Clone(pools.night), func(s int) bool {
			return in.problem.VacationNextDay(s, day)
		})
		shuffle(rng, safe)
		for len(selected) < GroupSize && len(safe) > 0 {
			staff := safe[0]
			safe = safe[1:]
			selected = append(selected, staff)
			pools.night = slices.DeleteFunc(pools.night, func(s int) bool { return s == staff })
		}
	}

	if len(selected) > GroupSize {
		selected = selected[:GroupSize]
	}
	return selected
}

func (in *Initializer) selectNightGroup(day int, pools *dayPools, dayGroup []int, rng *rand.Rand) []int {
	selected := slices.DeleteFunc(slices.Clone(pools.night), func(s int) bool {
		return slices.Contains(dayGroup, s)
	})
	shuffle(rng, selected)

	if len(selected) < GroupSize {
		safe := slices.DeleteFunc(slices.Clone(pools.off), func(s int) bool {
			return slices.Contains(dayGroup, s) || in.problem.VacationNextDay(s, day)
		})
		shuffle(rng, safe)
		for len(selected) < GroupSize && len(safe) > 0 {
			selected = append(selected, safe[0])
			safe = safe[1:]
		}
	}

	if len(selected) > GroupSize {
		selected = selected[:GroupSize]
	}
	return selected
}

// assignRoles orders the group by lead priority, keeping selection order for
// ties, and hands the lead code to the first member
func (in *Initializer) assignRoles(cells [][]ShiftCode, assigned [][]bool, day int, group []int, lead, member ShiftCode) {
	ordered := slices.Clone(group)
	staff := in.problem.Staff()
	slices.SortStableFunc(ordered, func(a, b int) int {
		return staff.LeadPriority(a) - staff.LeadPriority(b)
	})

	for i, s := range ordered {
		if i == 0 {
			cells[s][day] = lead
		} else {
			cells[s][day] = member
		}
		assigned[s][day] = true
	}
}

func shuffle(rng *rand.Rand, s []int) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
