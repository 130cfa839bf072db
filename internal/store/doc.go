// Package store provides SQLite-backed durable storage for the
// canonical match table and the load audit log.
//
// The canonical table is natural-keyed by match_id. Ingestion is
// idempotent: MergeMatches upserts a file's batch with last-writer-wins
// semantics inside a single transaction, so a mid-batch fault leaves
// the table exactly as it was before that file was attempted.
//
// The audit log is append-only: entries are inserted and never mutated
// or deleted. Reads order by rowid for deterministic results.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// The connection pool is limited to a single connection so only one
// writer touches the database at a time; a run claims exclusive write
// access for its duration.
package store
