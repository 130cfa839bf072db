package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FeedHeader is the header row of a well-formed match feed.
const FeedHeader = "MATCH_ID,COMPETITION,SEASON,PHASE,MATCH_DATE,HOME_TEAM,AWAY_TEAM,HOME_GOALS,AWAY_GOALS\n"

// WriteStagingFile writes one staged feed file with a fixed
// modification time. Listing order follows modification time, so tests
// control processing order through mod.
func WriteStagingFile(t *testing.T, dir, name, content string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write staging file %s: %v", name, err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}
