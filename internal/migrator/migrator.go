// Package migrator executes the fixed, ordered sequence of additive schema
// changes for the pingdeck database. Every step is idempotent: it inspects
// the live schema before acting and only issues DDL for objects that are
// missing, so re-running the whole sequence is the retry mechanism after a
// partial failure.
package migrator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pingdeck/migrate/database"
)

// ColumnAdd is one guarded column addition within a step.
type ColumnAdd struct {
	Column database.Column

	// DefaultNow gives the column a current-timestamp default. Dialects
	// that forbid a non-constant default in ADD COLUMN (SQLite) add the
	// column nullable instead and assign the timestamp in the backfill
	// pass.
	DefaultNow bool

	// Backfill is a SQL expression assigned to every row where the
	// column is NULL after the DDL pass. Empty means no backfill.
	Backfill string
}

// Step is one self-contained migration: a set of column additions and
// secondary indexes over a single table. Steps are declared statically in
// Steps; there is no runtime discovery.
type Step struct {
	Name    string
	Table   string
	Columns []ColumnAdd
	Indexes []database.Index
}

// Run applies the step to db. The column snapshot is taken before any
// mutation and every addition is guarded by its own presence check, so DDL
// success or failure is never used as the presence signal. Column DDL and
// backfills commit in one transaction; on any error the transaction rolls
// back and the schema stays in its pre-step state. Indexes are created
// after the commit: an index is a performance aid whose failure must not
// roll back the schema change, and a failed statement would poison an open
// Postgres transaction.
func (s Step) Run(ctx context.Context, db *sql.DB, drv database.Driver) Outcome {
	outcome := Outcome{Step: s.Name}

	columns, err := drv.GetColumns(ctx, db, s.Table)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("inspect table %s: %w", s.Table, err)
		return outcome
	}

	have := make(map[string]bool, len(columns))
	for _, col := range columns {
		have[col.Name] = true
	}

	applied, err := s.applyColumns(ctx, db, drv, have)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	indexed, warnings := s.applyIndexes(ctx, db, drv)
	outcome.Warnings = warnings

	if applied || indexed {
		outcome.Status = StatusApplied
	} else {
		outcome.Status = StatusAlreadyApplied
	}
	return outcome
}

// applyColumns adds the missing columns and runs the null-backfill pass,
// all inside one transaction. It reports whether any DDL was issued.
func (s Step) applyColumns(ctx context.Context, db *sql.DB, drv database.Driver, have map[string]bool) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}

	applied := false
	for _, ca := range s.Columns {
		if have[ca.Column.Name] {
			continue
		}
		stmt, desc := drv.AddColumn(s.Table, s.columnDefinition(drv, ca))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("%s: %w", desc, err)
		}
		applied = true
	}

	// Null-backfill pass, after all additive DDL. The WHERE clause
	// excludes rows already populated, so this never overwrites a value
	// a prior run or another writer set.
	for _, ca := range s.Columns {
		expr := ca.backfillExpr()
		if expr == "" {
			continue
		}
		stmt, desc := drv.BackfillColumn(s.Table, ca.Column.Name, expr)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("%s: %w", desc, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return applied, nil
}

// applyIndexes creates the step's missing indexes, each guarded by the
// introspected index names. Failures are downgraded to warnings: an index
// is reconstructible, an absent column may break dependent application
// code.
func (s Step) applyIndexes(ctx context.Context, db *sql.DB, drv database.Driver) (bool, []string) {
	if len(s.Indexes) == 0 {
		return false, nil
	}

	names, err := drv.GetIndexNames(ctx, db, s.Table)
	if err != nil {
		return false, []string{fmt.Sprintf("inspect indexes of %s: %v", s.Table, err)}
	}
	have := make(map[string]bool, len(names))
	for _, name := range names {
		have[name] = true
	}

	applied := false
	var warnings []string
	for _, idx := range s.Indexes {
		if have[idx.Name] {
			continue
		}
		stmt, desc := drv.AddIndex(s.Table, idx)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", desc, err))
			continue
		}
		applied = true
	}
	return applied, warnings
}

// columnDefinition resolves the dialect default policy for one column add.
func (s Step) columnDefinition(drv database.Driver, ca ColumnAdd) database.Column {
	col := ca.Column
	if ca.DefaultNow && drv.SupportsFeature(database.FeatureVolatileColumnDefault) {
		def := "CURRENT_TIMESTAMP"
		col.Default = &def
	}
	return col
}

func (ca ColumnAdd) backfillExpr() string {
	if ca.Backfill != "" {
		return ca.Backfill
	}
	if ca.DefaultNow {
		return "CURRENT_TIMESTAMP"
	}
	return ""
}
