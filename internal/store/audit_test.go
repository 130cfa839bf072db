package store

import (
	"context"
	"testing"
	"time"

	"github.com/roach88/matchload/internal/match"
)

func auditEntry(token, file string, rows int64, status string) match.AuditEntry {
	return match.AuditEntry{
		RunToken:     token,
		LoggedAt:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		FileName:     file,
		RowsInserted: rows,
		Status:       status,
	}
}

func TestAppendAudit_And_ReadAudit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	entries := []match.AuditEntry{
		auditEntry("run-1", "a_matches.csv", 2, match.StatusSuccess),
		auditEntry("run-1", "b_matches.csv", 0, "ERROR: unrecognized header"),
		auditEntry("run-2", "a_matches.csv", 2, match.StatusSuccess),
	}
	for _, e := range entries {
		if err := s.AppendAudit(ctx, e); err != nil {
			t.Fatalf("AppendAudit() failed: %v", err)
		}
	}

	got, err := s.ReadAudit(ctx, 0)
	if err != nil {
		t.Fatalf("ReadAudit() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	// Newest first.
	if got[0].RunToken != "run-2" || got[2].FileName != "a_matches.csv" {
		t.Errorf("unexpected order: %+v", got)
	}
	if got[1].Status != "ERROR: unrecognized header" {
		t.Errorf("status = %q", got[1].Status)
	}
	if !got[0].LoggedAt.Equal(entries[2].LoggedAt) {
		t.Errorf("LoggedAt = %v, want %v", got[0].LoggedAt, entries[2].LoggedAt)
	}
}

func TestReadAudit_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.AppendAudit(ctx, auditEntry("run-1", "f_matches.csv", int64(i), match.StatusSuccess)); err != nil {
			t.Fatalf("AppendAudit() failed: %v", err)
		}
	}

	got, err := s.ReadAudit(ctx, 2)
	if err != nil {
		t.Fatalf("ReadAudit() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
	if got[0].RowsInserted != 4 {
		t.Errorf("newest entry rows = %d, want 4", got[0].RowsInserted)
	}
}

func TestReadAudit_EmptyReturnsEmptySlice(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadAudit(context.Background(), 10)
	if err != nil {
		t.Fatalf("ReadAudit() failed: %v", err)
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestReadAuditForRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.AppendAudit(ctx, auditEntry("run-1", "a_matches.csv", 2, match.StatusSuccess)); err != nil {
		t.Fatalf("AppendAudit() failed: %v", err)
	}
	if err := s.AppendAudit(ctx, auditEntry("run-2", "b_matches.csv", 1, match.StatusSuccess)); err != nil {
		t.Fatalf("AppendAudit() failed: %v", err)
	}
	if err := s.AppendAudit(ctx, auditEntry("run-1", "c_matches.csv", 0, "ERROR: boom")); err != nil {
		t.Fatalf("AppendAudit() failed: %v", err)
	}

	got, err := s.ReadAuditForRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadAuditForRun() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Append order within the run.
	if got[0].FileName != "a_matches.csv" || got[1].FileName != "c_matches.csv" {
		t.Errorf("unexpected order: %+v", got)
	}

	none, err := s.ReadAuditForRun(ctx, "run-404")
	if err != nil {
		t.Fatalf("ReadAuditForRun() failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("unknown run should return empty slice, got %v", none)
	}
}
