// Package errors provides rich error types for template parsing.
//
// Errors carry a category, a message, the source location of the offending
// node, and an optional suggestion for fixing the problem. An ErrorList
// accumulates multiple errors so a malformed export reports everything wrong
// with it in one pass instead of failing on the first problem.
//
// The placeholder engine itself never produces these errors: missing fields,
// absent children, and non-string settings count as nothing to scan. Only
// decoding a template export can fail.
package errors
