package migrator

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/pingdeck/migrate/database"
	"github.com/pingdeck/migrate/database/sqlite"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunner_FailureIsolation(t *testing.T) {
	db := newTestDB(t)
	runner := NewRunner(db, sqlite.NewDriver(), WithLogger(quietLogger()))

	steps := []Step{
		{
			Name:  "broken",
			Table: "nonexistent",
			Columns: []ColumnAdd{
				{Column: database.Column{Name: "status", Type: "TEXT", Nullable: true}},
			},
		},
		{
			Name:  "checks-status",
			Table: "checks",
			Columns: []ColumnAdd{
				{Column: database.Column{Name: "status", Type: "TEXT", Nullable: true}, Backfill: "'idle'"},
			},
		},
		{
			Name:  "channels-kind",
			Table: "channels",
			Columns: []ColumnAdd{
				{Column: database.Column{Name: "kind", Type: "TEXT", Nullable: true}, Backfill: "'email'"},
			},
		},
	}

	report := runner.Run(context.Background(), steps)

	if len(report.Outcomes) != len(steps) {
		t.Fatalf("Expected %d outcomes, got %d", len(steps), len(report.Outcomes))
	}

	if report.Outcomes[0].Status != StatusFailed {
		t.Errorf("Step 0: expected %s, got %s", StatusFailed, report.Outcomes[0].Status)
	}
	if report.Outcomes[1].Status != StatusApplied {
		t.Errorf("Step 1: expected %s, got %s (err: %v)", StatusApplied, report.Outcomes[1].Status, report.Outcomes[1].Err)
	}
	if report.Outcomes[2].Status != StatusApplied {
		t.Errorf("Step 2: expected %s, got %s (err: %v)", StatusApplied, report.Outcomes[2].Status, report.Outcomes[2].Err)
	}

	if !report.Failed() {
		t.Error("Expected report.Failed() to be true")
	}
	if report.FailedCount() != 1 {
		t.Errorf("Expected 1 failed step, got %d", report.FailedCount())
	}
}

func TestRunner_ReportOrderMatchesInput(t *testing.T) {
	db := newTestDB(t)
	runner := NewRunner(db, sqlite.NewDriver(), WithLogger(quietLogger()))

	steps := Steps()
	report := runner.Run(context.Background(), steps)

	if len(report.Outcomes) != len(steps) {
		t.Fatalf("Expected %d outcomes, got %d", len(steps), len(report.Outcomes))
	}
	for i, o := range report.Outcomes {
		if o.Step != steps[i].Name {
			t.Errorf("Outcome %d: expected step %q, got %q", i, steps[i].Name, o.Step)
		}
	}
}

func TestRunner_Ordering(t *testing.T) {
	// stepA adds the column stepB's backfill depends on
	stepA := Step{
		Name:  "add-interval",
		Table: "checks",
		Columns: []ColumnAdd{
			{Column: database.Column{Name: "interval_seconds", Type: "INTEGER", Nullable: true}, Backfill: "86400"},
		},
	}
	stepB := Step{
		Name:  "add-interval-minutes",
		Table: "checks",
		Columns: []ColumnAdd{
			{Column: database.Column{Name: "interval_minutes", Type: "INTEGER", Nullable: true}, Backfill: "interval_seconds / 60"},
		},
	}

	t.Run("declared order", func(t *testing.T) {
		db := newTestDB(t)
		runner := NewRunner(db, sqlite.NewDriver(), WithLogger(quietLogger()))

		report := runner.Run(context.Background(), []Step{stepA, stepB})

		for i, o := range report.Outcomes {
			if o.Status != StatusApplied {
				t.Errorf("Step %d: expected %s, got %s (err: %v)", i, StatusApplied, o.Status, o.Err)
			}
		}

		var minutes int
		if err := db.QueryRow(`SELECT interval_minutes FROM checks WHERE name = 'backup-cron'`).Scan(&minutes); err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if minutes != 1440 {
			t.Errorf("Expected interval_minutes 1440, got %d", minutes)
		}
	})

	t.Run("reversed order", func(t *testing.T) {
		db := newTestDB(t)
		runner := NewRunner(db, sqlite.NewDriver(), WithLogger(quietLogger()))

		report := runner.Run(context.Background(), []Step{stepB, stepA})

		if report.Outcomes[0].Status != StatusFailed {
			t.Errorf("Dependent step out of order: expected %s, got %s", StatusFailed, report.Outcomes[0].Status)
		}
		if report.Outcomes[1].Status != StatusApplied {
			t.Errorf("Independent step: expected %s, got %s (err: %v)", StatusApplied, report.Outcomes[1].Status, report.Outcomes[1].Err)
		}
	})
}

func TestReport_Summary(t *testing.T) {
	report := &Report{
		Outcomes: []Outcome{
			{Step: "checks-status", Status: StatusApplied},
			{Step: "checks-indexes", Status: StatusAlreadyApplied, Warnings: []string{"index skipped"}},
		},
	}

	summary := report.Summary()
	if summary == "" {
		t.Fatal("Expected non-empty summary")
	}
	for _, want := range []string{"checks-status", "applied", "checks-indexes", "warning: index skipped"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Expected summary to contain %q:\n%s", want, summary)
		}
	}
}
