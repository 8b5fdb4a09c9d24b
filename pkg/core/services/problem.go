package services

import (
	"fmt"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
	"github.com/jakechorley/shift-roster/pkg/core/search"
)

// StaffFromConfig converts the configured staff pool in file order
func StaffFromConfig(cfg *config.Config) *roster.StaffRoster {
	members := make([]roster.StaffMember, len(cfg.Staff))
	for i, s := range cfg.Staff {
		categories := make([]roster.Category, len(s.Categories))
		for j, c := range s.Categories {
			categories[j] = roster.Category(c)
		}
		members[i] = roster.StaffMember{Name: s.Name, Team: s.Team, Categories: categories}
	}
	return roster.NewStaffRoster(members)
}

// BuildProblem turns the config into a scheduling problem: staff, period
// length, vacation cells and rotation offsets
func BuildProblem(cfg *config.Config) (*roster.Problem, error) {
	vacationDays, err := cfg.VacationDays()
	if err != nil {
		return nil, err
	}

	var cells []roster.Cell
	for staff, days := range vacationDays {
		for _, day := range days {
			cells = append(cells, roster.Cell{Staff: staff, Day: day})
		}
	}

	problem, err := roster.NewProblem(StaffFromConfig(cfg), cfg.Days, roster.NewVacationMask(cells...), roster.RotationOffsets(cfg.RotationOffsets()))
	if err != nil {
		return nil, fmt.Errorf("failed to build problem: %w", err)
	}
	return problem, nil
}

// WeightsFromConfig applies configured overrides to the default weights
func WeightsFromConfig(cfg *config.Config) fitness.Weights {
	w := fitness.DefaultWeights()
	overrides := []struct {
		value  *float64
		target *float64
	}{
		{cfg.Weights.RoleBalance, &w.RoleBalance},
		{cfg.Weights.RestAfterNight, &w.RestAfterNight},
		{cfg.Weights.RotationCycle, &w.RotationCycle},
		{cfg.Weights.LeaderPriority, &w.LeaderPriority},
		{cfg.Weights.ConsecutiveWork, &w.ConsecutiveWork},
		{cfg.Weights.ConsecutiveOff, &w.ConsecutiveOff},
		{cfg.Weights.WorkingHours, &w.WorkingHours},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.target = *o.value
		}
	}
	return w
}

// SearchParamsFromConfig applies configured overrides to the default search
// parameters. The seed is left for the caller.
func SearchParamsFromConfig(cfg *config.Config) search.Params {
	p := search.DefaultParams()
	s := cfg.Search

	if s.PopulationSize > 0 {
		p.PopulationSize = s.PopulationSize
	}
	if s.GenerationLimit > 0 {
		p.GenerationLimit = s.GenerationLimit
	}
	if s.EliteFraction > 0 {
		p.EliteFraction = s.EliteFraction
	}
	if s.MutationRate != nil {
		p.MutationRate = *s.MutationRate
	}
	if s.SuccessThreshold != nil {
		p.SuccessThreshold = *s.SuccessThreshold
	}
	if s.Workers > 0 {
		p.Workers = s.Workers
	}
	return p
}
