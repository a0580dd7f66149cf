package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pingdeck/migrate/internal/migrator"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply all schema migrations in order",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	connString, err := resolveDatabaseURL()
	if err != nil {
		return err
	}

	db, drv, err := openDatabase(connString)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	logrus.WithField("dialect", drv.Name()).Info("applying migrations")

	runner := migrator.NewRunner(db, drv)
	report := runner.Run(cmd.Context(), migrator.Steps())

	if report.Failed() {
		printFailureSummary(report)
		return fmt.Errorf("%d of %d migration steps failed", report.FailedCount(), len(report.Outcomes))
	}
	return nil
}

// printFailureSummary writes the per-step summary to stderr. It is only
// printed when at least one step failed; a clean run stays quiet beyond
// the step logs.
func printFailureSummary(report *migrator.Report) {
	for _, o := range report.Outcomes {
		switch o.Status {
		case migrator.StatusFailed:
			color.New(color.FgRed).Fprintf(os.Stderr, "%-24s failed: %v\n", o.Step, o.Err)
		case migrator.StatusApplied:
			color.New(color.FgGreen).Fprintf(os.Stderr, "%-24s applied\n", o.Step)
		default:
			fmt.Fprintf(os.Stderr, "%-24s already applied\n", o.Step)
		}
		for _, w := range o.Warnings {
			color.New(color.FgYellow).Fprintf(os.Stderr, "%-24s warning: %s\n", "", w)
		}
	}
}
