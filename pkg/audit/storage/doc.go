// Package storage provides the audit trail's storage backends.
//
// MemoryStorage keeps records in process memory; SQLiteStorage persists
// them to a SQLite file through the pure-Go driver. Both implement
// audit.Storage.
package storage
