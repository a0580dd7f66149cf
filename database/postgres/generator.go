package postgres

import (
	"fmt"
	"strings"

	"github.com/pingdeck/migrate/database"
)

// Generator implements database.SQLGenerator for PostgreSQL
type Generator struct{}

// NewGenerator creates a new PostgreSQL SQL generator
func NewGenerator() *Generator {
	return &Generator{}
}

// AddColumn generates PostgreSQL SQL to add a column. Non-constant defaults
// such as CURRENT_TIMESTAMP are legal here and also populate existing rows.
func (g *Generator) AddColumn(tableName string, col database.Column) (string, string) {
	sql := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s",
		tableName,
		g.FormatColumnDefinition(col))
	description := fmt.Sprintf("Add column %s to table %s", col.Name, tableName)
	return sql, description
}

// AddIndex generates PostgreSQL SQL to create an index
func (g *Generator) AddIndex(tableName string, idx database.Index) (string, string) {
	uniqueStr := ""
	if idx.Unique {
		uniqueStr = "UNIQUE "
	}

	columns := strings.Join(idx.Columns, ", ")

	sql := fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		uniqueStr, idx.Name, tableName, columns)

	description := fmt.Sprintf("Create index %s on table %s", idx.Name, tableName)
	return sql, description
}

// BackfillColumn generates PostgreSQL SQL to assign expr to rows where the
// column is still NULL
func (g *Generator) BackfillColumn(tableName, columnName, expr string) (string, string) {
	sql := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s IS NULL",
		tableName, columnName, expr, columnName)
	description := fmt.Sprintf("Backfill column %s on table %s", columnName, tableName)
	return sql, description
}

// FormatColumnDefinition formats a column definition for ALTER statements
func (g *Generator) FormatColumnDefinition(col database.Column) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s", col.Name, col.Type))

	if !col.Nullable {
		sb.WriteString(" NOT NULL")
	}

	if col.Default != nil {
		sb.WriteString(fmt.Sprintf(" DEFAULT %s", *col.Default))
	}

	return sb.String()
}
