package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/core/fitness"
	"github.com/jakechorley/shift-roster/pkg/core/services"
)

// ViewCmd creates the view command
func ViewCmd(app *AppContext) *cobra.Command {
	var maxViolations int

	cmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "Show a stored run and its score breakdown (defaults to the latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			store, err := app.Database()
			if err != nil {
				return err
			}

			evaluator := fitness.NewEvaluator(services.WeightsFromConfig(app.Cfg))
			view, err := services.ViewRoster(app.Ctx, store, evaluator, app.Logger, runID)
			if err != nil {
				return err
			}

			start, err := time.Parse(config.DateLayout, view.Run.PeriodStart)
			if err != nil {
				return fmt.Errorf("invalid period start on run %s: %w", view.Run.ID, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nRun ID:    %s\n", view.Run.ID)
			fmt.Fprintf(out, "Created:   %s\n", view.Run.CreatedAt)
			if view.Run.PublishedDatetime != "" {
				fmt.Fprintf(out, "Published: %s\n", view.Run.PublishedDatetime)
			}
			fmt.Fprintf(out, "Seed:      %d\n", view.Run.Seed)
			fmt.Fprintf(out, "Stored score: %.1f after %d generations (%s)\n\n", view.Run.Score, view.Run.Generations, view.Run.StopReason)

			printRoster(out, view.Grid, start)
			fmt.Fprintln(out)
			printBreakdown(out, view.Breakdown, evaluator.Score(view.Grid))
			fmt.Fprintln(out)
			printViolations(out, view.Violations, view.Grid.Problem().Staff(), maxViolations)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxViolations, "violations", 20, "Maximum number of violations to print")
	return cmd
}
