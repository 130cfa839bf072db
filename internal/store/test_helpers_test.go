package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/matchload/internal/match"
)

// createTestStore creates a store backed by a temp file database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testMatch creates a match record with the given key and goals.
func testMatch(id string, homeGoals int64) match.Match {
	date := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	away := int64(1)
	return match.Match{
		MatchID:     id,
		Competition: "UCL",
		Season:      "2025/26",
		Phase:       "LEAGUE_PHASE",
		MatchDate:   &date,
		HomeTeam:    "Home FC",
		AwayTeam:    "Away FC",
		HomeGoals:   &homeGoals,
		AwayGoals:   &away,
	}
}
