package migrator

import "github.com/pingdeck/migrate/database"

// Steps returns the forward migration sequence for the pingdeck database,
// in execution order. The base tables (checks, channels) are created by the
// application's initial deploy and are a precondition here; every step is
// additive and safe to re-run.
func Steps() []Step {
	return []Step{
		{
			Name:  "checks-status",
			Table: "checks",
			Columns: []ColumnAdd{
				{
					Column:   database.Column{Name: "status", Type: "TEXT", Nullable: true, Default: str("'idle'")},
					Backfill: "'idle'",
				},
			},
		},
		{
			Name:  "checks-ping-fields",
			Table: "checks",
			Columns: []ColumnAdd{
				{Column: database.Column{Name: "ping_url", Type: "TEXT", Nullable: true}},
				{Column: database.Column{Name: "last_ping_at", Type: "TIMESTAMP", Nullable: true}},
				{Column: database.Column{Name: "last_ping_success", Type: "BOOLEAN", Nullable: true}},
			},
		},
		{
			Name:  "checks-created-at",
			Table: "checks",
			Columns: []ColumnAdd{
				{
					Column:     database.Column{Name: "created_at", Type: "TIMESTAMP", Nullable: true},
					DefaultNow: true,
				},
			},
		},
		{
			Name:  "checks-schedule",
			Table: "checks",
			Columns: []ColumnAdd{
				{
					Column:   database.Column{Name: "interval_seconds", Type: "INTEGER", Nullable: true},
					Backfill: "86400",
				},
				{
					Column:   database.Column{Name: "grace_seconds", Type: "INTEGER", Nullable: true},
					Backfill: "3600",
				},
			},
		},
		{
			Name:  "checks-indexes",
			Table: "checks",
			Indexes: []database.Index{
				{Name: "ix_checks_status", Columns: []string{"status"}},
				{Name: "ix_checks_last_ping_at", Columns: []string{"last_ping_at"}},
			},
		},
		{
			Name:  "channels-kind",
			Table: "channels",
			Columns: []ColumnAdd{
				{
					Column:   database.Column{Name: "kind", Type: "TEXT", Nullable: true, Default: str("'email'")},
					Backfill: "'email'",
				},
			},
			Indexes: []database.Index{
				{Name: "ix_channels_kind", Columns: []string{"kind"}},
			},
		},
	}
}

func str(s string) *string { return &s }
