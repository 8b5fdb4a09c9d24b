package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-roster/internal/config"
	"github.com/jakechorley/shift-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-roster/pkg/db"
	"github.com/jakechorley/shift-roster/pkg/postgres"
	"github.com/jakechorley/shift-roster/pkg/sheetssql"
)

// AppContext holds the application dependencies shared across all commands.
// The sheets client and database are opened on first use so dry runs and
// staff listings need neither OAuth nor a store.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	sheetsClient *sheetsclient.Client
	database     db.Database
	closers      []func()
}

// SheetsClient authenticates and returns the Google Sheets client
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}

// Database opens the run store: Postgres when databaseURL is configured,
// otherwise the SheetsSQL spreadsheet
func (app *AppContext) Database() (db.Database, error) {
	if app.database != nil {
		return app.database, nil
	}

	switch {
	case app.Cfg.DatabaseURL != "":
		app.Logger.Info("Connecting to postgres")
		pg, err := postgres.Open(app.Ctx, app.Cfg.DatabaseURL, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres run store: %w", err)
		}
		app.closers = append(app.closers, pg.Close)
		app.database = pg

	case app.Cfg.DatabaseSheetID != "":
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}

		schema, err := db.Schema()
		if err != nil {
			return nil, fmt.Errorf("failed to create database schema: %w", err)
		}
		app.Logger.Debug("Database schema created", zap.Int("tables", len(schema.Tables)))

		app.Logger.Info("Connecting to database", zap.String("spreadsheet_id", app.Cfg.DatabaseSheetID))
		ssqlDB, err := sheetssql.NewDB(app.Ctx, client, app.Cfg.DatabaseSheetID, schema)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		app.database = db.NewDB(ssqlDB)

	default:
		return nil, fmt.Errorf("no run store configured: set databaseURL or databaseSheetID")
	}

	app.Logger.Info("Database initialized successfully")
	return app.database, nil
}

// Close releases any opened connections
func (app *AppContext) Close() {
	for _, closeFn := range app.closers {
		closeFn()
	}
	app.closers = nil
}
