package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/shift-roster/pkg/db"
)

// GetRosterRuns retrieves all run records, newest first
func (d *DB) GetRosterRuns(ctx context.Context) ([]db.RosterRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, period_start, days, staff_count, seed, score, generations, stop_reason, created_at, published_datetime
		FROM roster_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster runs: %w", err)
	}
	defer rows.Close()

	var runs []db.RosterRun
	for rows.Next() {
		var r db.RosterRun
		var periodStart, createdAt time.Time
		var seed int64
		var publishedDatetime *time.Time
		if err := rows.Scan(&r.ID, &periodStart, &r.Days, &r.StaffCount, &seed, &r.Score,
			&r.Generations, &r.StopReason, &createdAt, &publishedDatetime); err != nil {
			return nil, fmt.Errorf("failed to scan roster run: %w", err)
		}
		r.PeriodStart = periodStart.Format("2006-01-02")
		r.Seed = uint64(seed)
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)
		if publishedDatetime != nil {
			r.PublishedDatetime = publishedDatetime.UTC().Format(time.RFC3339Nano)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster runs: %w", err)
	}

	return runs, nil
}

// GetRosterRows retrieves the rows of one run ordered by staff index
func (d *DB) GetRosterRows(ctx context.Context, runID string) ([]db.RosterRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, staff_index, staff_name, team, categories, rotation_offset, codes
		FROM roster_row
		WHERE run_id = $1
		ORDER BY staff_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster rows: %w", err)
	}
	defer rows.Close()

	var result []db.RosterRow
	for rows.Next() {
		var r db.RosterRow
		var categories, codes []string
		var offset *int16
		if err := rows.Scan(&r.RunID, &r.StaffIndex, &r.StaffName, &r.Team, &categories, &offset, &codes); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		r.Categories = strings.Join(categories, ",")
		r.Codes = strings.Join(codes, " ")
		r.Offset = db.NoOffset
		if offset != nil {
			r.Offset = int(*offset)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}

	return result, nil
}

// InsertRosterRun inserts a run and all of its rows in one transaction
func (d *DB) InsertRosterRun(ctx context.Context, run *db.RosterRun, rows []db.RosterRow) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// seed is stored bit for bit in a signed BIGINT
	_, err = tx.Exec(ctx, `
		INSERT INTO roster_run (id, period_start, days, staff_count, seed, score, generations, stop_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.PeriodStart, run.Days, run.StaffCount, int64(run.Seed), run.Score,
		run.Generations, run.StopReason, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert roster run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		var offset *int16
		if r.Offset != db.NoOffset {
			o := int16(r.Offset)
			offset = &o
		}
		batch.Queue(`
			INSERT INTO roster_row (run_id, staff_index, staff_name, team, categories, rotation_offset, codes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.RunID, r.StaffIndex, r.StaffName, r.Team, splitList(r.Categories, ","), offset, strings.Fields(r.Codes))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert roster rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetRunPublishedDatetime sets the published_datetime for a run
func (d *DB) SetRunPublishedDatetime(ctx context.Context, runID string, datetime time.Time) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE roster_run SET published_datetime = $2 WHERE id = $1
	`, runID, datetime.UTC())
	if err != nil {
		return fmt.Errorf("failed to set roster run published_datetime: %w", err)
	}
	return nil
}

func splitList(s, sep string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, sep)
}
