// Package storage provides the template library's storage backends.
//
// Two implementations of library.Store are available:
//
//   - MemoryStore: in-memory map, the default backend
//   - SQLiteStore: SQLite file with WAL mode, for deployments that need
//     templates to survive restarts
//
// Both replace on Put keyed by template ID and preserve CreatedAt across
// replacements.
package storage
