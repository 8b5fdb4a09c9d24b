package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/roster"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorGreen   = "\033[32m"
	colorRed     = "\033[31m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorDim     = "\033[2m"
)

var labelColors = map[string]string{
	"DL": colorCyan,
	"D":  colorGreen,
	"NL": colorYellow,
	"N":  colorBlue,
	"P":  colorRed,
	"R":  colorDim,
	"V":  colorMagenta,
}

const dayColWidth = 3

// printRoster draws the grid with one column per day and a total hours column.
// Rest after a night shift is shown as P.
func printRoster(w io.Writer, grid *roster.Grid, start time.Time) {
	staff := grid.Problem().Staff()
	hours := fitness.StaffHours(grid)

	nameColWidth := 12
	for _, name := range staff.Names() {
		if len(name)+2 > nameColWidth {
			nameColWidth = len(name) + 2
		}
	}

	fmt.Fprintf(w, "%-*s", nameColWidth, "")
	for day := 0; day < grid.DayCount(); day++ {
		fmt.Fprintf(w, "%*s", dayColWidth, start.AddDate(0, 0, day).Format("Mon")[:2])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-*s", nameColWidth, "Staff")
	for day := 0; day < grid.DayCount(); day++ {
		fmt.Fprintf(w, "%*d", dayColWidth, start.AddDate(0, 0, day).Day())
	}
	fmt.Fprintf(w, "  %s\n", "Hours")
	fmt.Fprintln(w, strings.Repeat("-", nameColWidth+dayColWidth*grid.DayCount()+7))

	for s := 0; s < grid.StaffCount(); s++ {
		fmt.Fprintf(w, "%-*s", nameColWidth, staff.Member(s).Name)
		for day, code := range grid.Row(s) {
			label := code.String()
			if code == roster.Rest && day > 0 && grid.At(s, day-1).IsNightWorking() {
				label = "P"
			}
			fmt.Fprintf(w, "%s%*s%s", labelColors[label], dayColWidth, label, colorReset)
		}
		fmt.Fprintf(w, "  %5.0f\n", hours[s])
	}
}

// printBreakdown lists the deduction of each criterion and the final score
func printBreakdown(w io.Writer, breakdown []fitness.CriterionScore, score float64) {
	fmt.Fprintf(w, "%-18s %10s %10s %12s\n", "Criterion", "Units", "Weight", "Deduction")
	fmt.Fprintln(w, strings.Repeat("-", 53))
	for _, c := range breakdown {
		color := colorGreen
		if c.Deduction > 0 {
			color = colorRed
		}
		fmt.Fprintf(w, "%-18s %10.2f %10.0f %s%12.1f%s\n", c.Name, c.Units, c.Weight, color, c.Deduction, colorReset)
	}
	fmt.Fprintln(w, strings.Repeat("-", 53))
	fmt.Fprintf(w, "%-18s %35.1f / %d\n", "Score", score, fitness.BaseScore)
}

// printViolations lists up to limit violations. A limit of 0 prints none.
func printViolations(w io.Writer, violations []fitness.Violation, staff *roster.StaffRoster, limit int) {
	if len(violations) == 0 {
		fmt.Fprintf(w, "%sNo violations%s\n", colorGreen, colorReset)
		return
	}

	fmt.Fprintf(w, "Violations (%d):\n", len(violations))
	for i, v := range violations {
		if i == limit {
			fmt.Fprintf(w, "  %s... %d more%s\n", colorDim, len(violations)-limit, colorReset)
			break
		}

		who := "-"
		if v.StaffIndex >= 0 && v.StaffIndex < staff.Len() {
			who = staff.Member(v.StaffIndex).Name
		}
		day := "-"
		if v.Day >= 0 {
			day = fmt.Sprintf("%d", v.Day+1)
		}
		fmt.Fprintf(w, "  %s%-16s%s day %-3s %-14s %s\n", colorYellow, v.CriterionName, colorReset, day, who, v.Description)
	}
}
