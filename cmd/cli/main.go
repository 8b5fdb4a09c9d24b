package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/cmd/cli/commands"
	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/utils/logging"
)

var (
	env     string
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &commands.AppContext{Ctx: ctx}

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Shift roster generator",
		Long: `Generates a staff shift roster for a period by searching for the assignment that best
satisfies the rotation, rest, role and workload rules, then stores and publishes it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.ViewCmd(app))
	rootCmd.AddCommand(commands.StaffCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and config. Clients and the database are
// opened by the commands that need them.
func initApp(app *commands.AppContext) error {
	logger, logPath, err := logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	app.Env = env

	app.Logger.Info("Starting application", zap.String("environment", env), zap.String("log_file", logPath))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("period_start", app.Cfg.PeriodStart),
		zap.Int("days", app.Cfg.Days),
		zap.Int("staff", len(app.Cfg.Staff)))

	return nil
}
