package migrator

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pingdeck/migrate/database"
)

// Runner executes migration steps strictly in their declared order against
// a single connection. Steps may depend on schema created by earlier steps,
// so the order is never changed and steps never run concurrently.
type Runner struct {
	db     *sql.DB
	driver database.Driver
	log    logrus.FieldLogger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger overrides the default logrus standard logger.
func WithLogger(log logrus.FieldLogger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// NewRunner creates a Runner over an open connection. The caller owns the
// connection and must close it on all exit paths.
func NewRunner(db *sql.DB, driver database.Driver, opts ...RunnerOption) *Runner {
	r := &Runner{
		db:     db,
		driver: driver,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the steps one at a time. A failing step is recorded and
// skipped, never aborting the run: a later re-run of the whole sequence is
// the retry mechanism, relying on step idempotency. The report always
// holds exactly one outcome per input step, in execution order, and no
// error ever escapes the runner. Whether a failed step fails the overall
// deployment is the caller's policy, decided from the report.
func (r *Runner) Run(ctx context.Context, steps []Step) *Report {
	report := &Report{Outcomes: make([]Outcome, 0, len(steps))}

	for _, step := range steps {
		entry := r.log.WithFields(logrus.Fields{
			"step":  step.Name,
			"table": step.Table,
		})
		entry.Info("running migration step")

		start := time.Now()
		outcome := step.Run(ctx, r.db, r.driver)

		entry = entry.WithFields(logrus.Fields{
			"status":   outcome.Status,
			"duration": time.Since(start).Round(time.Millisecond).String(),
		})
		for _, w := range outcome.Warnings {
			entry.Warn(w)
		}
		if outcome.Status == StatusFailed {
			entry.WithError(outcome.Err).Error("migration step failed")
		} else {
			entry.Info("migration step finished")
		}

		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}
