package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/matchload/internal/match"
)

// dateFormat encodes match_date columns (date only, no time part).
const dateFormat = "2006-01-02"

// timeFormat encodes loaded_at and logged_at columns.
const timeFormat = time.RFC3339Nano

// MergeMatches upserts a file's batch into the canonical table by
// natural key. For every record: if a row with the same match_id
// exists, all non-key fields are overwritten and loaded_at is
// refreshed; otherwise a new row is inserted.
//
// The merge is atomic per batch: either every record is committed or
// none are, so a mid-batch fault leaves the table untouched for this
// file. Records sharing a match_id within the batch are deduplicated
// before commit, last occurrence wins (mirrors the parser's emission
// order).
//
// Returns the number of deduplicated records presented (inserted or
// updated), not a net row-count delta. An empty batch returns 0
// without opening a transaction.
func (s *Store) MergeMatches(ctx context.Context, batch []match.Match, loadedAt time.Time) (int64, error) {
	deduped := dedupeLastWins(batch)
	if len(deduped) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("merge matches: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches
		(match_id, competition, season, phase, match_date, home_team, away_team, home_goals, away_goals, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET
			competition = excluded.competition,
			season      = excluded.season,
			phase       = excluded.phase,
			match_date  = excluded.match_date,
			home_team   = excluded.home_team,
			away_team   = excluded.away_team,
			home_goals  = excluded.home_goals,
			away_goals  = excluded.away_goals,
			loaded_at   = excluded.loaded_at
	`)
	if err != nil {
		return 0, fmt.Errorf("merge matches: prepare: %w", err)
	}
	defer stmt.Close()

	loadedAtStr := loadedAt.UTC().Format(timeFormat)
	applied := 0
	for _, m := range deduped {
		_, err := stmt.ExecContext(ctx,
			m.MatchID,
			m.Competition,
			m.Season,
			m.Phase,
			nullDate(m.MatchDate),
			m.HomeTeam,
			m.AwayTeam,
			nullInt(m.HomeGoals),
			nullInt(m.AwayGoals),
			loadedAtStr,
		)
		if err != nil {
			return 0, fmt.Errorf("merge matches: upsert %s: %w", m.MatchID, err)
		}
		applied++

		if s.mergeHook != nil {
			if err := s.mergeHook(applied); err != nil {
				return 0, fmt.Errorf("merge matches: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("merge matches: commit: %w", err)
	}

	return int64(applied), nil
}

// dedupeLastWins collapses in-batch duplicates by match_id. The
// surviving record keeps the position of the key's first occurrence
// and the values of its last, so the result is deterministic.
func dedupeLastWins(batch []match.Match) []match.Match {
	out := make([]match.Match, 0, len(batch))
	index := make(map[string]int, len(batch))
	for _, m := range batch {
		if i, seen := index[m.MatchID]; seen {
			out[i] = m
			continue
		}
		index[m.MatchID] = len(out)
		out = append(out, m)
	}
	return out
}

// nullDate converts an optional date to its column value.
func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateFormat)
}

// nullInt converts an optional integer to its column value.
func nullInt(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
