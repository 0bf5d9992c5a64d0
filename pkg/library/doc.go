// Package library defines the stored template record and the Store
// interface its storage backends implement.
//
// A Template couples a parsed document with the placeholder registry
// extracted from it, a content hash, and a per-load revision. Backends
// live in the storage subpackage (in-memory and SQLite); the manager
// subpackage loads template files from disk, runs extraction, and keeps
// the store current, optionally watching the directory for changes.
package library
