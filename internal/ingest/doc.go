// Package ingest drives the ingestion run: it lists the staging area,
// processes each feed file in an isolated scope (parse, merge, audit),
// and assembles the run report.
//
// # Run Shape
//
// A run is logically sequential. Files are processed one at a time in
// the fixed newest-first staging order, because merge correctness
// (last-writer-wins, per-batch atomicity) depends on a well-defined
// order against the canonical table's current state. The run holds the
// database's run lock for its duration; a second run over the same
// database, from this process or any other, fails fast with RUN_ACTIVE
// instead of interleaving files and corrupting merge order.
//
// # Failure Boundaries
//
// Faults raised while parsing or merging one file are caught at the
// file boundary, written to the audit log as an ERROR entry, and the
// run advances to the next file. Only discovery failure (the staging
// area cannot be listed) is fatal to the run, since no audit
// information can be produced when file discovery itself is
// impossible. A failed audit append is logged to diagnostics and
// swallowed: a logging failure is never an ingestion failure.
//
// Context cancellation is honored between files, never mid-file; every
// per-file merge already committed stays durable.
package ingest
