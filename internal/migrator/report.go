package migrator

import (
	"fmt"
	"strings"
)

// Status is the terminal state of one migration step for one run.
type Status string

const (
	// StatusApplied means the step issued at least one schema change.
	StatusApplied Status = "applied"

	// StatusAlreadyApplied means every object the step is responsible
	// for was already present.
	StatusAlreadyApplied Status = "already-applied"

	// StatusFailed means the step rolled back and the schema is in its
	// pre-step state.
	StatusFailed Status = "failed"
)

// Outcome records the result of one step. Index creation problems are
// collected as warnings rather than failing the step.
type Outcome struct {
	Step     string
	Status   Status
	Err      error
	Warnings []string
}

// Report is the ordered outcome record for one run, one entry per executed
// step in execution order. It is complete regardless of how many steps
// failed.
type Report struct {
	Outcomes []Outcome
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	return r.FailedCount() > 0
}

// FailedCount returns the number of failed steps.
func (r *Report) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Summary renders one line per step in execution order.
func (r *Report) Summary() string {
	var sb strings.Builder
	for _, o := range r.Outcomes {
		sb.WriteString(fmt.Sprintf("%-24s %s", o.Step, o.Status))
		if o.Err != nil {
			sb.WriteString(": " + o.Err.Error())
		}
		sb.WriteString("\n")
		for _, w := range o.Warnings {
			sb.WriteString(fmt.Sprintf("%-24s warning: %s\n", "", w))
		}
	}
	return sb.String()
}
