package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-roster/pkg/core/services"
)

// StaffCmd creates the staff command
func StaffCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "staff",
		Short: "List the configured staff with their rotation and vacation days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, err := services.ListStaff(app.Cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nStaff for %d days from %s\n\n", app.Cfg.Days, app.Cfg.PeriodStart)
			fmt.Fprintf(out, "%-3s %-16s %-8s %-24s %-9s %s\n", "#", "Name", "Team", "Categories", "Rotation", "Vacation")
			fmt.Fprintln(out, strings.Repeat("-", 80))
			for _, s := range staff {
				rotation := s.RotationStart
				if rotation == "" {
					rotation = "-"
				}
				team := s.Team
				if team == "" {
					team = "-"
				}
				fmt.Fprintf(out, "%-3d %-16s %-8s %-24s %-9s %s\n",
					s.Index+1, s.Name, team, strings.Join(s.Categories, ","), rotation, formatDays(s.VacationDays))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// formatDays collapses sorted days into ranges, e.g. "1-3, 7"
func formatDays(days []int) string {
	if len(days) == 0 {
		return "-"
	}

	var parts []string
	start := days[0]
	prev := days[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, d := range days[1:] {
		if d == prev+1 {
			prev = d
			continue
		}
		flush()
		start, prev = d, d
	}
	flush()

	return strings.Join(parts, ", ")
}
