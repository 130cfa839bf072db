package ingest

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RunTokenGenerator generates unique run tokens for audit correlation.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type RunTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens. UUIDv7
// embeds a timestamp in the most significant bits, so tokens sort by
// run start time, which helps when scanning the audit log. Stateless
// and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator yields deterministic run tokens for tests: the prefix
// followed by a one-based counter, e.g. "run-0001", "run-0002". Tokens
// written to test audit rows stay stable across reruns.
type FixedGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewFixedGenerator creates a counter-based generator with the given
// token prefix.
func NewFixedGenerator(prefix string) *FixedGenerator {
	return &FixedGenerator{prefix: prefix}
}

// Generate returns the next token in the sequence.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
