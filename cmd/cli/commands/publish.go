package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-roster/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [run_id]",
		Short: "Publish a stored run to the roster spreadsheet (defaults to the latest run)",
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
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishRoster(app.Ctx, store, client, app.Cfg, app.Logger, runID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Roster published successfully!\n\n")
			fmt.Fprintf(out, "Run ID: %s\n", result.Run.ID)
			fmt.Fprintf(out, "Score:  %.1f\n", result.Run.Score)
			fmt.Fprintf(out, "Tab:    %s\n", result.TabTitle)
			fmt.Fprintf(out, "URL:    https://docs.google.com/spreadsheets/d/%s\n\n", app.Cfg.RosterSheetID)
			return nil
		},
	}
}
