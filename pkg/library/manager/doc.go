// Package manager loads page-builder template exports into the library.
//
// The Manager reads .json exports from a directory, parses each into a
// document tree, runs placeholder extraction once, and stores document
// and registry together in a library.Store. The optional FileWatcher
// reloads the directory when exports change on disk, debouncing rapid
// write bursts into a single reload.
package manager
