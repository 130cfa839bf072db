// Package match defines the domain types shared across the ingestion
// pipeline: the canonical match record, audit entries, per-file
// outcomes, and the run report.
//
// # Natural Key
//
// MatchID is the natural unique key of the canonical store. A record
// re-ingested with an existing MatchID overwrites all non-key fields
// and refreshes LoadedAt (last-writer-wins upsert); it never creates a
// duplicate row.
//
// # Outcome Encoding
//
// A per-file attempt is either a success with a row count or a failure
// with a reason. FileOutcome carries that variant internally; the
// legacy audit string encoding ("SUCCESS" / "ERROR: <message>") is
// produced only at the audit write boundary via AuditStatus.
package match
