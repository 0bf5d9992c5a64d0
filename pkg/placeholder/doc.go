// Package placeholder defines the shared types for the placeholder
// extraction and substitution engine.
//
// A placeholder is a symbolic marker embedded in a template's text fields,
// written as {{KEY}}. The engine scans a template tree for these markers,
// classifies each one into a semantic type with metadata (required flag,
// fallback value, validation pattern), and deduplicates the results into a
// TemplatePlaceholders registry. An external content pipeline uses that
// registry to produce values, which the substitution engine later writes
// into a copy of the template.
//
// # Subpackages
//
// token: the token grammar ({{KEY}} matching)
//
// scanner: tree traversal emitting raw occurrences
//
// classifier: occurrence -> Mapping classification rules
//
// registry: stable deduplication and section grouping
//
// substitute: value substitution over a deep copy of the tree
//
// engine: the facade combining extraction and substitution
//
// # Pipeline
//
//	Document -> scanner -> []Occurrence -> classifier -> []Mapping
//	         -> registry -> TemplatePlaceholders
//
//	Document + values -> substitute -> new Document
package placeholder
