package roster

import "math/rand/v2"

// Mutate returns a new grid where, independently for each day and with
// probability rate, the codes of two distinct non-vacation staff are swapped.
// The parent grid is never modified.
func Mutate(g *Grid, rate float64, rng *rand.Rand) *Grid {
	cells := cloneCells(g.cells)
	swappable := make([]int, 0, len(cells))

	for day := 0; day < g.DayCount(); day++ {
		if rng.Float64() >= rate {
			continue
		}

		swappable = swappable[:0]
		for s := range cells {
			if cells[s][day] != Vacation {
				swappable = append(swappable, s)
			}
		}
		if len(swappable) < 2 {
			continue
		}

		i := rng.IntN(len(swappable))
		j := rng.IntN(len(swappable) - 1)
		if j >= i {
			j++
		}
		a, b := swappable[i], swappable[j]
		cells[a][day], cells[b][day] = cells[b][day], cells[a][day]
	}

	return &Grid{problem: g.problem, cells: cells}
}
