package match

import (
	"fmt"
	"strings"
)

// Report is the transient run summary assembled by the orchestrator.
// It is never persisted; the audit log is the durable source of truth
// for machine consumers.
type Report struct {
	RunToken       string   `json:"run_token"`
	FilesAttempted int      `json:"files_attempted"`
	FilesSucceeded int      `json:"files_succeeded"`
	FilesFailed    int      `json:"files_failed"`
	RowsAffected   int64    `json:"rows_affected"`
	Lines          []string `json:"lines"`
}

// NewReport creates an empty report for a run.
func NewReport(runToken string) *Report {
	return &Report{RunToken: runToken, Lines: []string{}}
}

// Record folds one per-file outcome into the running totals and
// appends its human-readable status line. Outcomes must be recorded in
// processing order; Lines preserves that order.
func (r *Report) Record(o FileOutcome) {
	r.FilesAttempted++
	if o.Succeeded() {
		r.FilesSucceeded++
		r.RowsAffected += o.Rows
		r.Lines = append(r.Lines, fmt.Sprintf("✓ %s: %d row(s)", o.FileName, o.Rows))
		return
	}
	r.FilesFailed++
	r.Lines = append(r.Lines, fmt.Sprintf("✗ %s: %s", o.FileName, o.Err))
}

// Render produces the textual report returned to the caller: every
// file attempted with a ✓/✗ marker, then the summary counts. The
// summary is always present, even when every file failed or the
// staging area matched nothing.
func (r *Report) Render() string {
	var b strings.Builder
	for _, line := range r.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Processed %d file(s): %d succeeded, %d failed\n", r.FilesAttempted, r.FilesSucceeded, r.FilesFailed)
	fmt.Fprintf(&b, "Total rows affected: %d\n", r.RowsAffected)
	return b.String()
}
