package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// DB stores roster runs and their rows in PostgreSQL
type DB struct {
	pool *pgxpool.Pool
}

// Open connects to the run store and brings its schema up to date. The pool
// is closed again if either step fails.
func Open(ctx context.Context, connString string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	applied, err := migrate(ctx, db, migrationsFS, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logger.Debug("Run store ready", zap.Strings("applied_migrations", applied))

	return db, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.pool.Close()
}

// migrationLedger records which migration files a database has applied
type migrationLedger interface {
	appliedMigrations(ctx context.Context) (map[string]bool, error)
	applyMigration(ctx context.Context, filename, sql string) error
}

// migrate applies every pending .sql file under migrations/ in filename
// order and returns the ones it applied. It stops at the first failure.
func migrate(ctx context.Context, ledger migrationLedger, fsys fs.FS, logger *zap.Logger) ([]string, error) {
	applied, err := ledger.appliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := pendingMigrations(fsys, applied)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, filename := range pending {
		content, err := fs.ReadFile(fsys, path.Join(migrationsDir, filename))
		if err != nil {
			return done, fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		logger.Info("Applying migration", zap.String("migration", filename))
		if err := ledger.applyMigration(ctx, filename, string(content)); err != nil {
			return done, err
		}
		done = append(done, filename)
	}

	return done, nil
}

// pendingMigrations lists the migration files not yet applied, sorted by name
func pendingMigrations(fsys fs.FS, applied map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") || applied[name] {
			continue
		}
		pending = append(pending, name)
	}
	slices.Sort(pending)
	return pending, nil
}

func (db *DB) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := db.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	filenames, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan migration filenames: %w", err)
	}

	applied := make(map[string]bool, len(filenames))
	for _, filename := range filenames {
		applied[filename] = true
	}
	return applied, nil
}

// applyMigration runs one migration and records it in the same transaction
func (db *DB) applyMigration(ctx context.Context, filename, sql string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", filename, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", filename, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", filename, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", filename, err)
	}
	return nil
}
