package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/matchload/internal/match"
	"github.com/roach88/matchload/internal/parser"
	"github.com/roach88/matchload/internal/staging"
)

// Storage is the store surface the orchestrator needs. Satisfied by
// *store.Store; narrowed to an interface so tests can interpose
// fault injection on individual operations.
type Storage interface {
	// AcquireRunLock takes the database's exclusive run lock without
	// waiting, or fails if another run holds it.
	AcquireRunLock() (release func() error, err error)

	MergeMatches(ctx context.Context, batch []match.Match, loadedAt time.Time) (int64, error)
	AppendAudit(ctx context.Context, entry match.AuditEntry) error
}

// Ingestor orchestrates one ingestion pipeline: a staging source, the
// canonical store, and a file pattern.
//
// Run moves through Idle → Listing → (per file: Parsing → Merging →
// Logging) → Summarizing → Done. Construction is cheap; the Ingestor
// holds no resources beyond its collaborators.
type Ingestor struct {
	store   Storage
	source  *staging.Dir
	pattern string
	clock   Clock
	tokens  RunTokenGenerator
	logger  *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithPattern overrides the staging file pattern
// (default match.DefaultFilePattern).
func WithPattern(pattern string) Option {
	return func(in *Ingestor) {
		in.pattern = pattern
	}
}

// WithClock overrides the ingestion clock. Used by tests to pin
// loaded_at / logged_at timestamps.
func WithClock(c Clock) Option {
	return func(in *Ingestor) {
		in.clock = c
	}
}

// WithRunTokenGenerator overrides the run token generator
// (default UUIDv7Generator).
func WithRunTokenGenerator(g RunTokenGenerator) Option {
	return func(in *Ingestor) {
		in.tokens = g
	}
}

// WithLogger overrides the diagnostic logger (default slog.Default).
func WithLogger(l *slog.Logger) Option {
	return func(in *Ingestor) {
		in.logger = l
	}
}

// New creates an Ingestor over the given store and staging source.
func New(st Storage, src *staging.Dir, opts ...Option) *Ingestor {
	in := &Ingestor{
		store:   st,
		source:  src,
		pattern: match.DefaultFilePattern,
		clock:   SystemClock{},
		tokens:  UUIDv7Generator{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes one ingestion run and returns its report.
//
// Every staged file matching the pattern is attempted in newest-first
// order; per-file faults are audited and absorbed. Run returns a
// non-nil error only for run-fatal conditions: the staging area cannot
// be listed (DISCOVERY_FAILED) or another run is active (RUN_ACTIVE).
// The active-run guard is the store's run lock, keyed on the database,
// so two runs over the same database exclude each other whether they
// share this process or not. Cancellation via ctx stops the run
// between files; files already merged stay committed and reported.
func (in *Ingestor) Run(ctx context.Context) (*match.Report, error) {
	release, err := in.store.AcquireRunLock()
	if err != nil {
		return nil, NewRunActiveError(err)
	}
	defer func() {
		if err := release(); err != nil {
			in.logger.Error("run lock release failed", "error", err)
		}
	}()

	token := in.tokens.Generate()
	in.logger.Info("ingestion run starting", "run_token", token, "staging", in.source.Path(), "pattern", in.pattern)

	files, err := in.source.List(in.pattern)
	if err != nil {
		return nil, NewDiscoveryError(err)
	}
	in.logger.Info("staging listed", "run_token", token, "files", len(files))

	report := match.NewReport(token)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			in.logger.Warn("run cancelled between files", "run_token", token, "remaining", len(files)-report.FilesAttempted)
			break
		}

		outcome := in.ingestFile(ctx, f)
		in.recordOutcome(ctx, token, outcome)
		report.Record(outcome)
	}

	in.logger.Info("ingestion run finished",
		"run_token", token,
		"files_attempted", report.FilesAttempted,
		"files_failed", report.FilesFailed,
		"rows_affected", report.RowsAffected,
	)
	return report, nil
}

// ingestFile is the isolated per-file scope: parse the feed, merge its
// batch. Any fault is captured in the outcome; nothing escapes the
// file boundary.
func (in *Ingestor) ingestFile(ctx context.Context, f staging.File) match.FileOutcome {
	cur, err := parser.Open(f.Path)
	if err != nil {
		return match.Failure(f.Name, err)
	}
	defer cur.Close()

	var batch []match.Match
	rowErrs := 0
	for {
		row, err := cur.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return match.Failure(f.Name, fmt.Errorf("read %s: %w", f.Name, err))
		}
		if row.Err != nil {
			rowErrs++
			in.logger.Warn("malformed row dropped", "file", f.Name, "line", row.Err.Line, "reason", row.Err.Reason)
			continue
		}
		batch = append(batch, *row.Match)
	}
	if rowErrs > 0 {
		in.logger.Info("file parsed with malformed rows", "file", f.Name, "rows", len(batch), "dropped", rowErrs)
	}

	rows, err := in.store.MergeMatches(ctx, batch, in.clock.Now())
	if err != nil {
		return match.Failure(f.Name, fmt.Errorf("merge %s: %w", f.Name, err))
	}
	return match.Success(f.Name, rows)
}

// recordOutcome appends the audit entry for one attempt. An append
// failure is diagnostic-only: it must never escalate into aborting the
// batch, so it is logged and swallowed here.
func (in *Ingestor) recordOutcome(ctx context.Context, token string, o match.FileOutcome) {
	entry := match.AuditEntry{
		RunToken:     token,
		LoggedAt:     in.clock.Now(),
		FileName:     o.FileName,
		RowsInserted: o.Rows,
		Status:       o.AuditStatus(),
	}
	// The entry must land even if the run's context was cancelled
	// mid-file; the attempt already happened.
	if err := in.store.AppendAudit(context.WithoutCancel(ctx), entry); err != nil {
		in.logger.Error("audit append failed", "run_token", token, "file", o.FileName, "error", err)
	}
}
