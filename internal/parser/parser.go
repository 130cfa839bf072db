// Package parser converts one delimited feed file into a sequence of
// typed candidate match records.
//
// The cursor is lazy (rows are decoded as they are consumed) and
// finite; it is not restartable, re-reading a file means opening a
// new cursor. Source feeds are externally produced and not guaranteed
// clean, so the parser degrades to partial data instead of refusing a
// file:
//
//   - invalid byte sequences are replaced, never rejected
//   - a column-count mismatch yields a RowError, not a file failure
//   - an absent MATCH_ID is always a hard row failure
//   - unparseable dates and goals null the field and keep the row
//
// Only I/O failure, or a header that does not belong to a match feed,
// is fatal to the whole file.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/roach88/matchload/internal/match"
)

// Feed column order, fixed by the staged file contract.
const (
	colMatchID = iota
	colCompetition
	colSeason
	colPhase
	colMatchDate
	colHomeTeam
	colAwayTeam
	colHomeGoals
	colAwayGoals

	numColumns
)

// headerKey is the required first header column of a match feed.
// A file whose header does not start with it is treated as corrupt.
const headerKey = "MATCH_ID"

// dateLayouts are tried in order when coercing MATCH_DATE.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02.01.2006",
	"Jan 2, 2006",
}

// RowError describes one malformed row. It is emitted through the
// cursor instead of aborting the file.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// Row is one cursor result: either a parsed candidate record or a
// row-level error. Exactly one of Match and Err is non-nil.
type Row struct {
	Match *match.Match
	Err   *RowError
	Line  int
}

// Cursor lazily yields rows from one feed file.
type Cursor struct {
	f    *os.File
	r    *csv.Reader
	line int
	done bool
}

// Open opens a feed file and validates its header.
//
// The header row is consumed here and never emitted. An empty file is
// valid (the cursor terminates immediately with zero rows); a file
// whose first column is not MATCH_ID is rejected as a whole, since
// nothing after a foreign header can be mapped to the canonical schema.
func Open(path string) (*Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}

	// Replace ill-formed byte sequences with U+FFFD rather than
	// letting them poison field decoding downstream.
	r := csv.NewReader(transform.NewReader(f, runes.ReplaceIllFormed()))
	r.FieldsPerRecord = -1 // column counts are checked per row
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	c := &Cursor{f: f, r: r, line: 0}
	if err := c.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

// readHeader consumes and validates the header record.
func (c *Cursor) readHeader() error {
	rec, err := c.r.Read()
	if err == io.EOF {
		// No header at all: an empty feed, not a corrupt one.
		c.done = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	c.line++

	first := strings.TrimSpace(rec[0])
	if !strings.EqualFold(first, headerKey) {
		return fmt.Errorf("unrecognized header: first column %q, want %q", first, headerKey)
	}
	return nil
}

// Next returns the next row. It returns io.EOF once the file is
// exhausted, and a non-EOF error only for faults that invalidate the
// remainder of the file (I/O errors). Malformed rows come back as
// Row.Err and never stop the cursor.
func (c *Cursor) Next() (Row, error) {
	if c.done {
		return Row{}, io.EOF
	}

	rec, err := c.r.Read()
	if err == io.EOF {
		c.done = true
		return Row{}, io.EOF
	}
	c.line++

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return Row{
			Line: parseErr.Line,
			Err:  &RowError{Line: parseErr.Line, Reason: parseErr.Err.Error()},
		}, nil
	}
	if err != nil {
		return Row{}, fmt.Errorf("read row %d: %w", c.line, err)
	}

	return parseRecord(rec, c.line), nil
}

// Close releases the underlying file.
func (c *Cursor) Close() error {
	return c.f.Close()
}

// parseRecord coerces one raw record into a candidate match.
func parseRecord(rec []string, line int) Row {
	if len(rec) != numColumns {
		return Row{
			Line: line,
			Err:  &RowError{Line: line, Reason: fmt.Sprintf("expected %d columns, got %d", numColumns, len(rec))},
		}
	}

	fields := make([]string, numColumns)
	for i, v := range rec {
		fields[i] = strings.TrimSpace(v)
	}

	if fields[colMatchID] == "" {
		return Row{
			Line: line,
			Err:  &RowError{Line: line, Reason: "missing MATCH_ID"},
		}
	}

	m := &match.Match{
		MatchID:     fields[colMatchID],
		Competition: fields[colCompetition],
		Season:      fields[colSeason],
		Phase:       fields[colPhase],
		MatchDate:   parseDate(fields[colMatchDate]),
		HomeTeam:    fields[colHomeTeam],
		AwayTeam:    fields[colAwayTeam],
		HomeGoals:   parseGoals(fields[colHomeGoals]),
		AwayGoals:   parseGoals(fields[colAwayGoals]),
	}
	return Row{Match: m, Line: line}
}

// parseDate auto-detects the date layout. Coercion failure nulls the
// field; the row is kept.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseGoals coerces a goals field. Goals are non-negative integers;
// anything else (including negatives) nulls the field.
func parseGoals(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
