package sheetssql

import (
	"context"
	"fmt"
)

// SheetsClient is the subset of the sheets client a table store needs
type SheetsClient interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRows(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
	CreateSheet(ctx context.Context, spreadsheetID, sheetTitle string) (int64, error)
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
}

// Column defines a column with name and type
type Column struct {
	Name string
	Type string // e.g. "text", "date", "int", "float", "timestamp", "uuid"
}

// TableSchema defines the structure of a table
type TableSchema struct {
	Name    string
	Columns []Column
}

// Schema defines the database schema
type Schema struct {
	Tables []TableSchema
}

// DB treats every tab of one spreadsheet as a table. Row 1 holds column
// names, row 2 column types and data starts at row 3.
type DB struct {
	client        SheetsClient
	spreadsheetID string
	schema        *Schema
}

// NewDB connects to the spreadsheet and creates or verifies every table
func NewDB(ctx context.Context, client SheetsClient, spreadsheetID string, schema *Schema) (*DB, error) {
	db := &DB{
		client:        client,
		spreadsheetID: spreadsheetID,
		schema:        schema,
	}

	if err := db.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// SpreadsheetID returns the database spreadsheet ID
func (db *DB) SpreadsheetID() string {
	return db.spreadsheetID
}

// InsertRows appends rows to the specified table
func (db *DB) InsertRows(ctx context.Context, tableName string, rows [][]interface{}) error {
	return db.client.AppendRows(ctx, db.spreadsheetID, tableName, rows)
}
