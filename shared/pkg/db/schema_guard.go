package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ColumnType represents expected column schema
type ColumnType struct {
	Name     string
	DataType string
	Nullable bool
}

// TableSchema represents expected table structure
type TableSchema struct {
	Name    string
	Columns []ColumnType
}

// ErrTableMissing is returned when the table does not exist.
var ErrTableMissing = fmt.Errorf("table does not exist")

// SchemaGuard validates database schema matches expectations
type SchemaGuard struct {
	db *sql.DB
}

// NewSchemaGuard creates a new schema guard
func NewSchemaGuard(db *sql.DB) *SchemaGuard {
	return &SchemaGuard{db: db}
}

const columnsQuery = `
	SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
	FROM INFORMATION_SCHEMA.COLUMNS
	WHERE TABLE_SCHEMA = DATABASE()
	AND TABLE_NAME = ?
	ORDER BY ORDINAL_POSITION
`

// ValidateTable checks that every expected column exists with a compatible
// type and nullability.
func (sg *SchemaGuard) ValidateTable(ctx context.Context, schema TableSchema) error {
	rows, err := sg.db.QueryContext(ctx, columnsQuery, schema.Name)
	if err != nil {
		return fmt.Errorf("failed to query table schema for %s: %w", schema.Name, err)
	}
	defer rows.Close()

	actual := make(map[string]ColumnType)
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return fmt.Errorf("failed to scan column info: %w", err)
		}
		actual[name] = ColumnType{
			Name:     name,
			DataType: dataType,
			Nullable: nullable == "YES",
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read table schema for %s: %w", schema.Name, err)
	}

	if len(actual) == 0 {
		return fmt.Errorf("%w: %s", ErrTableMissing, schema.Name)
	}

	for _, expected := range schema.Columns {
		col, ok := actual[expected.Name]
		if !ok {
			return fmt.Errorf("table %s missing expected column: %s", schema.Name, expected.Name)
		}
		if !matchesDataType(col.DataType, expected.DataType) {
			return fmt.Errorf("table %s column %s has type %s, expected %s",
				schema.Name, expected.Name, col.DataType, expected.DataType)
		}
		if col.Nullable && !expected.Nullable {
			return fmt.Errorf("table %s column %s must be NOT NULL", schema.Name, expected.Name)
		}
	}

	return nil
}

// matchesDataType accepts a sized variant of the expected base type,
// e.g. smallint(5) for smallint.
func matchesDataType(actual, expected string) bool {
	actual, expected = strings.ToLower(actual), strings.ToLower(expected)
	if actual == expected {
		return true
	}
	return strings.HasPrefix(actual, expected+"(")
}
