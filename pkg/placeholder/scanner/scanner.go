// Package scanner walks a template tree and finds placeholder occurrences.
//
// The traversal is depth-first and pre-order: a node's own fields are
// scanned before its children, children in sibling order. For each node the
// fixed set of text-bearing fields (placeholder.ScannedFields) is tested
// against the settings map; only string values are scanned. Nodes without
// settings or without children are simply empty, never errors.
//
// Each node is assigned a section key "section_{depth}_{siblingIndex}"
// derived from its traversal position, not its identity. Two different
// branches at the same depth and index therefore share a section key; that
// collision is part of the contract downstream consumers rely on.
package scanner

import (
	"fmt"

	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/placeholder/token"
	"pagecraft-hq/callisto/pkg/template/ast"
)

// Scanner finds placeholder token occurrences in template trees.
// A Scanner holds no traversal state: every Scan call runs an isolated
// pass, so one instance is safe for concurrent use.
type Scanner struct{}

// New creates a new Scanner.
func New() *Scanner {
	return &Scanner{}
}

// Scan walks the document and returns all token occurrences in document
// order. The document is read-only; Scan never mutates it.
func (s *Scanner) Scan(doc *ast.Document) []placeholder.Occurrence {
	var occurrences []placeholder.Occurrence
	if doc == nil {
		return occurrences
	}
	for i, node := range doc.Content {
		s.scanNode(node, 0, i, &occurrences)
	}
	return occurrences
}

// scanNode scans one node's fields, then recurses into its children.
func (s *Scanner) scanNode(n *ast.Node, depth, siblingIndex int, out *[]placeholder.Occurrence) {
	if n == nil {
		return
	}

	sectionKey := SectionKey(depth, siblingIndex)

	for _, field := range placeholder.ScannedFields {
		text, ok := n.StringSetting(field)
		if !ok {
			continue
		}
		for _, m := range token.Find(text) {
			*out = append(*out, placeholder.Occurrence{
				Key:          m.Key,
				Field:        field,
				WidgetType:   n.WidgetType,
				ElementType:  n.ElementType,
				FieldText:    text,
				SectionKey:   sectionKey,
				Depth:        depth,
				SiblingIndex: siblingIndex,
			})
		}
	}

	for i, child := range n.Elements {
		s.scanNode(child, depth+1, i, out)
	}
}

// SectionKey derives the section grouping key for a traversal position.
func SectionKey(depth, siblingIndex int) string {
	return fmt.Sprintf("section_%d_%d", depth, siblingIndex)
}
