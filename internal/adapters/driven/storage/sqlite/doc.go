// Package sqlite provides the SQLite-backed implementation of the
// MetadataStore driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It persists two tables:
//
//   - documents: one row per ingested document, doc_id unique
//   - query_log: one immutable row per search call
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// # Data Location
//
// By default, the database is stored at ~/.semsearch/data/metadata.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; doc_id uniqueness is enforced by the
// PRIMARY KEY constraint, so concurrent inserts cannot claim the same ID.
package sqlite
