package services

import (
	"sort"

	"github.com/jakechorley/shift-roster/internal/config"
)

// StaffSummary is one line of the staff listing
type StaffSummary struct {
	Index         int
	Name          string
	Team          string
	Categories    []string
	RotationStart string
	VacationDays  []int
}

// ListStaff summarises the configured staff pool in roster order. Vacation
// days are 1-based.
func ListStaff(cfg *config.Config) ([]StaffSummary, error) {
	vacationDays, err := cfg.VacationDays()
	if err != nil {
		return nil, err
	}

	summaries := make([]StaffSummary, len(cfg.Staff))
	for i, s := range cfg.Staff {
		days := make([]int, 0, len(vacationDays[i]))
		seen := make(map[int]bool)
		for _, d := range vacationDays[i] {
			if !seen[d] {
				seen[d] = true
				days = append(days, d+1)
			}
		}
		sort.Ints(days)

		summaries[i] = StaffSummary{
			Index:         i,
			Name:          s.Name,
			Team:          s.Team,
			Categories:    s.Categories,
			RotationStart: s.RotationStart,
			VacationDays:  days,
		}
	}
	return summaries, nil
}
