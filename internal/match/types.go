package match

import "time"

// DefaultFilePattern matches the naming contract of staged feed files.
// Competition feeds arrive as e.g. "UCL_champions_league_matches.csv".
const DefaultFilePattern = "*_matches.csv"

// Match is one canonical match record, keyed by MatchID.
//
// MatchDate, HomeGoals and AwayGoals are nullable: source feeds are
// externally produced and a field that fails coercion is nulled rather
// than failing the row (see internal/parser for the field policy).
type Match struct {
	MatchID     string     `json:"match_id"`
	Competition string     `json:"competition"`
	Season      string     `json:"season"`
	Phase       string     `json:"phase"`
	MatchDate   *time.Time `json:"match_date,omitempty"`
	HomeTeam    string     `json:"home_team"`
	AwayTeam    string     `json:"away_team"`
	HomeGoals   *int64     `json:"home_goals,omitempty"`
	AwayGoals   *int64     `json:"away_goals,omitempty"`

	// LoadedAt is set by the store at merge time, never by the parser.
	LoadedAt time.Time `json:"loaded_at"`
}

// AuditEntry is one append-only record of a per-file ingestion attempt.
//
// RunToken correlates every entry written by a single orchestrator run.
// Status holds the legacy string encoding: "SUCCESS", or
// "ERROR: <message>" for a failed attempt.
type AuditEntry struct {
	ID           int64     `json:"id"`
	RunToken     string    `json:"run_token"`
	LoggedAt     time.Time `json:"logged_at"`
	FileName     string    `json:"file_name"`
	RowsInserted int64     `json:"rows_inserted"`
	Status       string    `json:"status"`
}

// StatusSuccess is the audit status written for a successful attempt.
const StatusSuccess = "SUCCESS"

// StatusErrorPrefix prefixes the audit status of a failed attempt.
const StatusErrorPrefix = "ERROR: "
