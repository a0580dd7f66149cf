package sqlite

import (
	"testing"

	"github.com/pingdeck/migrate/database"
)

func TestGenerator_AddColumn(t *testing.T) {
	g := NewGenerator()

	col := database.Column{Name: "ping_url", Type: "TEXT", Nullable: true}
	sql, desc := g.AddColumn("checks", col)

	expected := "ALTER TABLE checks ADD COLUMN ping_url TEXT"
	if sql != expected {
		t.Errorf("AddColumn SQL = %q, want %q", sql, expected)
	}

	if desc == "" {
		t.Error("Expected non-empty description")
	}
}

func TestGenerator_AddColumn_ConstantDefault(t *testing.T) {
	g := NewGenerator()

	def := "'idle'"
	col := database.Column{Name: "status", Type: "TEXT", Nullable: true, Default: &def}
	sql, _ := g.AddColumn("checks", col)

	expected := "ALTER TABLE checks ADD COLUMN status TEXT DEFAULT 'idle'"
	if sql != expected {
		t.Errorf("AddColumn SQL = %q, want %q", sql, expected)
	}
}

func TestGenerator_AddIndex(t *testing.T) {
	g := NewGenerator()

	idx := database.Index{Name: "ix_checks_status", Columns: []string{"status"}}
	sql, desc := g.AddIndex("checks", idx)

	expected := "CREATE INDEX IF NOT EXISTS ix_checks_status ON checks (status)"
	if sql != expected {
		t.Errorf("AddIndex SQL = %q, want %q", sql, expected)
	}

	if desc == "" {
		t.Error("Expected non-empty description")
	}
}

func TestGenerator_AddIndex_Unique(t *testing.T) {
	g := NewGenerator()

	idx := database.Index{Name: "ux_checks_ping_url", Columns: []string{"ping_url"}, Unique: true}
	sql, _ := g.AddIndex("checks", idx)

	expected := "CREATE UNIQUE INDEX IF NOT EXISTS ux_checks_ping_url ON checks (ping_url)"
	if sql != expected {
		t.Errorf("AddIndex SQL = %q, want %q", sql, expected)
	}
}

func TestGenerator_BackfillColumn(t *testing.T) {
	g := NewGenerator()

	sql, desc := g.BackfillColumn("checks", "status", "'idle'")

	expected := "UPDATE checks SET status = 'idle' WHERE status IS NULL"
	if sql != expected {
		t.Errorf("BackfillColumn SQL = %q, want %q", sql, expected)
	}

	if desc == "" {
		t.Error("Expected non-empty description")
	}
}

func TestGenerator_FormatColumnDefinition(t *testing.T) {
	g := NewGenerator()

	def := "0"
	tests := []struct {
		name     string
		col      database.Column
		expected string
	}{
		{"nullable", database.Column{Name: "ping_url", Type: "TEXT", Nullable: true}, "ping_url TEXT"},
		{"not null", database.Column{Name: "name", Type: "TEXT", Nullable: false}, "name TEXT NOT NULL"},
		{"with default", database.Column{Name: "retries", Type: "INTEGER", Nullable: true, Default: &def}, "retries INTEGER DEFAULT 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := g.FormatColumnDefinition(tt.col)
			if result != tt.expected {
				t.Errorf("FormatColumnDefinition = %q, want %q", result, tt.expected)
			}
		})
	}
}
