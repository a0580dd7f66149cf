package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pingdeck/migrate/database"
)

// Introspector implements database.Introspector for SQLite
type Introspector struct{}

// NewIntrospector creates a new SQLite introspector
func NewIntrospector() *Introspector {
	return &Introspector{}
}

// GetColumns returns all columns for a given SQLite table.
// SQLite reports zero rows rather than an error when the table is missing,
// so absence is checked explicitly against sqlite_master instead of
// inspecting driver error strings.
func (i *Introspector) GetColumns(ctx context.Context, db *sql.DB, tableName string) ([]database.Column, error) {
	// SQLite uses PRAGMA table_info
	query := fmt.Sprintf("PRAGMA table_info(%s)", tableName)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []database.Column
	for rows.Next() {
		var cid int
		var col database.Column
		var notNull int
		var defaultVal sql.NullString
		var pk int

		// PRAGMA table_info returns: cid, name, type, notnull, dflt_value, pk
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}

		col.Nullable = notNull == 0
		if defaultVal.Valid {
			col.Default = &defaultVal.String
		}

		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		exists, err := i.TableExists(ctx, db, tableName)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", database.ErrTableNotFound, tableName)
		}
	}

	return columns, nil
}

// GetIndexNames returns the names of the table's secondary indexes.
// Auto-created indexes (primary keys, unique constraints) are skipped.
func (i *Introspector) GetIndexNames(ctx context.Context, db *sql.DB, tableName string) ([]string, error) {
	query := fmt.Sprintf("PRAGMA index_list(%s)", tableName)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var seq int
		var name string
		var unique int
		var origin string
		var partial int

		// PRAGMA index_list returns: seq, name, unique, origin, partial
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}

		if origin != "c" || strings.HasPrefix(name, "sqlite_autoindex") {
			continue
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// TableExists reports whether the table exists.
func (i *Introspector) TableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error) {
	var name string
	err := db.QueryRowContext(ctx, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name = ?
	`, tableName).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query sqlite_master: %w", err)
	}
	return true, nil
}
