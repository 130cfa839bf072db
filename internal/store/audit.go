package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/matchload/internal/match"
)

// AppendAudit inserts one audit entry. The log is append-only; there
// is no update or delete path. Entry.ID is assigned by the database
// and ignored on input.
func (s *Store) AppendAudit(ctx context.Context, entry match.AuditEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO load_audit
		(run_token, logged_at, file_name, rows_inserted, status)
		VALUES (?, ?, ?, ?, ?)
	`,
		entry.RunToken,
		entry.LoggedAt.UTC().Format(timeFormat),
		entry.FileName,
		entry.RowsInserted,
		entry.Status,
	)
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// ReadAudit returns the newest audit entries, most recent first.
// Ordering is by rowid descending, which is deterministic and matches
// append order. limit <= 0 returns every entry. Returns an empty slice
// (not nil) when the log is empty.
func (s *Store) ReadAudit(ctx context.Context, limit int) ([]match.AuditEntry, error) {
	query := `
		SELECT id, run_token, logged_at, file_name, rows_inserted, status
		FROM load_audit
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	defer rows.Close()

	entries := []match.AuditEntry{}
	for rows.Next() {
		var e match.AuditEntry
		var loggedAt string
		if err := rows.Scan(&e.ID, &e.RunToken, &loggedAt, &e.FileName, &e.RowsInserted, &e.Status); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		t, err := time.Parse(timeFormat, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at %q: %w", loggedAt, err)
		}
		e.LoggedAt = t
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// ReadAuditForRun returns the audit entries written by one run, in
// append order. Returns an empty slice (not nil) for an unknown token.
func (s *Store) ReadAuditForRun(ctx context.Context, runToken string) ([]match.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_token, logged_at, file_name, rows_inserted, status
		FROM load_audit
		WHERE run_token = ?
		ORDER BY id ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query audit for run: %w", err)
	}
	defer rows.Close()

	entries := []match.AuditEntry{}
	for rows.Next() {
		var e match.AuditEntry
		var loggedAt string
		if err := rows.Scan(&e.ID, &e.RunToken, &loggedAt, &e.FileName, &e.RowsInserted, &e.Status); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		t, err := time.Parse(timeFormat, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at %q: %w", loggedAt, err)
		}
		e.LoggedAt = t
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}
