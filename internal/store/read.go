package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/matchload/internal/match"
)

// GetMatch retrieves a single canonical row by natural key.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT match_id, competition, season, phase, match_date, home_team, away_team, home_goals, away_goals, loaded_at
		FROM matches
		WHERE match_id = ?
	`, matchID)
	return scanMatch(row)
}

// ListMatches returns every canonical row ordered by match_id, which
// is deterministic across runs. Returns an empty slice (not nil) when
// the table is empty.
func (s *Store) ListMatches(ctx context.Context) ([]match.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, competition, season, phase, match_date, home_team, away_team, home_goals, away_goals, loaded_at
		FROM matches
		ORDER BY match_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := []match.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}

	return matches, nil
}

// CountMatches returns the number of canonical rows.
func (s *Store) CountMatches(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

// scanMatch decodes one canonical row, converting nullable columns
// back to optional fields.
func scanMatch(s scanner) (match.Match, error) {
	var m match.Match
	var matchDate sql.NullString
	var homeGoals, awayGoals sql.NullInt64
	var loadedAt string

	err := s.Scan(
		&m.MatchID,
		&m.Competition,
		&m.Season,
		&m.Phase,
		&matchDate,
		&m.HomeTeam,
		&m.AwayTeam,
		&homeGoals,
		&awayGoals,
		&loadedAt,
	)
	if err != nil {
		return match.Match{}, err
	}

	if matchDate.Valid {
		t, err := time.Parse(dateFormat, matchDate.String)
		if err != nil {
			return match.Match{}, fmt.Errorf("parse match_date %q: %w", matchDate.String, err)
		}
		m.MatchDate = &t
	}
	if homeGoals.Valid {
		v := homeGoals.Int64
		m.HomeGoals = &v
	}
	if awayGoals.Valid {
		v := awayGoals.Int64
		m.AwayGoals = &v
	}

	t, err := time.Parse(timeFormat, loadedAt)
	if err != nil {
		return match.Match{}, fmt.Errorf("parse loaded_at %q: %w", loadedAt, err)
	}
	m.LoadedAt = t

	return m, nil
}
