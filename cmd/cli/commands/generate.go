package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/pkg/core/search"
	"github.com/jakechorley/shift-roster/pkg/core/services"
	"github.com/jakechorley/shift-roster/pkg/db"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var seed uint64
	var dryRun, publish bool
	var maxViolations int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Search for the best roster of the configured period and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun && publish {
				return fmt.Errorf("--publish cannot be combined with --dry-run")
			}

			opts := services.GenerateOptions{
				DryRun: dryRun,
				OnGeneration: func(stats search.GenerationStats) {
					app.Logger.Debug("Generation complete",
						zap.Int("generation", stats.Generation),
						zap.Float64("best", stats.Best),
						zap.Float64("mean", stats.Mean))
				},
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}

			var store db.Database
			if !dryRun {
				var err error
				if store, err = app.Database(); err != nil {
					return err
				}
			}

			result, err := services.GenerateRoster(app.Ctx, store, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Saved {
				fmt.Fprintf(out, "\n✓ Roster saved\n\n")
			} else {
				fmt.Fprintf(out, "\n%sDry run, roster not saved%s\n\n", colorYellow, colorReset)
			}
			fmt.Fprintf(out, "Run ID:      %s\n", result.Run.ID)
			fmt.Fprintf(out, "Seed:        %d\n", result.Run.Seed)
			fmt.Fprintf(out, "Generations: %d (%s)\n\n", result.Run.Generations, result.Run.StopReason)

			printRoster(out, result.Grid, app.Cfg.Start())
			fmt.Fprintln(out)
			printBreakdown(out, result.Breakdown, result.Run.Score)
			fmt.Fprintln(out)
			printViolations(out, result.Violations, result.Grid.Problem().Staff(), maxViolations)

			if !publish {
				return nil
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}
			published, err := services.PublishRoster(app.Ctx, store, client, app.Cfg, app.Logger, result.Run.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n✓ Published to tab %q\n", published.TabTitle)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed; the same seed and config reproduce the same roster")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Search without saving the run")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the saved run to the roster spreadsheet")
	cmd.Flags().IntVar(&maxViolations, "violations", 20, "Maximum number of violations to print")

	return cmd
}
