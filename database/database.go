// Package database defines the model shared by the migration engine:
// connection-string classification into a dialect, schema metadata types,
// and the introspection and DDL-generation contracts that each dialect
// package implements.
package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Dialect identifies a supported SQL dialect family.
type Dialect string

const (
	// DialectSQLite covers local SQLite files, in-memory databases, and
	// remote libSQL endpoints; they all speak SQLite SQL.
	DialectSQLite Dialect = "sqlite"

	// DialectPostgres is the networked-server dialect and the fallback
	// for any connection string without an SQLite marker.
	DialectPostgres Dialect = "postgres"
)

// ErrTableNotFound reports that an introspected table does not exist. A
// missing table is a deployment precondition violation; the migration
// engine neither creates tables nor retries the step.
var ErrTableNotFound = errors.New("table not found")

// Feature names understood by Driver.SupportsFeature.
const (
	// FeatureVolatileColumnDefault marks dialects that accept a
	// non-constant default such as CURRENT_TIMESTAMP in ALTER TABLE ADD
	// COLUMN. SQLite rejects those; the column is added nullable there
	// and the backfill pass assigns the value instead.
	FeatureVolatileColumnDefault = "VOLATILE_COLUMN_DEFAULT"

	// FeatureAddColumnIfNotExists marks dialects with a native ADD
	// COLUMN IF NOT EXISTS. Presence is always checked through the
	// introspector regardless, so this is informational.
	FeatureAddColumnIfNotExists = "ADD_COLUMN_IF_NOT_EXISTS"
)

// Column represents a table column.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  *string
}

// Index represents a secondary index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Introspector reads live schema metadata. Results are never cached; the
// migration engine re-queries whenever freshness matters, since earlier
// steps in the same run mutate the tables between snapshots.
type Introspector interface {
	// GetColumns returns the current columns of a table. It returns an
	// error wrapping ErrTableNotFound when the table does not exist.
	GetColumns(ctx context.Context, db *sql.DB, tableName string) ([]Column, error)

	// GetIndexNames returns the names of the table's secondary indexes.
	GetIndexNames(ctx context.Context, db *sql.DB, tableName string) ([]string, error)

	// TableExists reports whether the table exists.
	TableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error)
}

// SQLGenerator generates dialect-specific additive DDL and backfill DML.
// Every method returns the statement and a human-readable description for
// logs and error messages.
type SQLGenerator interface {
	// AddColumn generates SQL to add a column to a table.
	AddColumn(tableName string, col Column) (sql string, description string)

	// AddIndex generates SQL to create an index, tolerant of the index
	// already existing.
	AddIndex(tableName string, idx Index) (sql string, description string)

	// BackfillColumn generates an UPDATE assigning expr to every row
	// whose column is NULL. Rows already populated are excluded by the
	// WHERE clause and never overwritten.
	BackfillColumn(tableName, columnName, expr string) (sql string, description string)
}

// Driver represents a database dialect with introspection and SQL
// generation.
type Driver interface {
	Introspector
	SQLGenerator

	// Name returns the dialect name (e.g., "postgres", "sqlite").
	Name() string

	// SupportsFeature checks if the dialect supports a specific feature.
	SupportsFeature(feature string) bool
}

// DetectDialect classifies a connection string. It is a pure, total
// function: unrecognized schemes fall back to the Postgres dialect rather
// than erroring, since the dialect only gates syntax choice.
func DetectDialect(connString string) Dialect {
	s := strings.ToLower(strings.TrimSpace(connString))

	if s == ":memory:" {
		return DialectSQLite
	}
	if strings.HasPrefix(s, "sqlite://") ||
		strings.HasPrefix(s, "file:") ||
		strings.HasPrefix(s, "libsql://") {
		return DialectSQLite
	}
	if strings.HasSuffix(s, ".db") ||
		strings.HasSuffix(s, ".sqlite") ||
		strings.HasSuffix(s, ".sqlite3") {
		return DialectSQLite
	}

	return DialectPostgres
}

// SQLDriverName maps a connection string to the registered database/sql
// driver name.
func SQLDriverName(connString string) string {
	if strings.HasPrefix(strings.ToLower(connString), "libsql://") {
		return "libsql"
	}
	if DetectDialect(connString) == DialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

// DSN returns the string to pass to sql.Open for the given connection
// string. The sqlite:// scheme is our own convention and is stripped; the
// file: URI form is understood by the driver as-is.
func DSN(connString string) string {
	if strings.HasPrefix(connString, "sqlite://") {
		return strings.TrimPrefix(connString, "sqlite://")
	}
	return connString
}
