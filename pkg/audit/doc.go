// Package audit keeps a trail of engine operations.
//
// Each extraction, substitution, and library reload produces one Record
// holding counts, outcome, and timing. Records never contain placeholder
// values. The Recorder writes asynchronously through a buffered channel,
// so the operations being audited never wait on storage.
//
// Storage backends live in the storage subpackage; retention enforcement
// lives in the retention subpackage.
package audit
