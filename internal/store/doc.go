// Package store provides a SQLite-backed catalog of generated DDL.
//
// Each Revision records the DDL rendered for one schema fingerprint in one
// dialect, together with a per-table summary:
//   - revisions: one row per (fingerprint, dialect), UNIQUE
//   - revision_tables: table names and check counts, in declaration order
//
// Recording is idempotent: recording the same fingerprint and dialect again
// returns the existing revision. Reads are ordered by seq ASC, the insertion
// order, never by wall time.
//
// The catalog stores DDL as text. It does not execute it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
