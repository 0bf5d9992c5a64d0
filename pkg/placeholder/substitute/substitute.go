// Package substitute rewrites a template copy with supplied values.
//
// Apply first makes a structural deep copy of the input document, then runs
// the same depth-first traversal as the scanner, replacing tokens in the
// scanned fields. Tokens without a supplied value stay as literal {{KEY}}
// text; classifier fallbacks are advisory metadata for the caller and are
// never applied here. Non-scanned fields and non-string settings are copied
// through untouched, and the input document is never mutated.
package substitute

import (
	"pagecraft-hq/callisto/pkg/placeholder"
	"pagecraft-hq/callisto/pkg/placeholder/token"
	"pagecraft-hq/callisto/pkg/template/ast"
)

// Apply returns a new document with values substituted for tokens.
// The returned document is a fully independent deep copy; the input is
// read-only. An empty or nil value map returns a plain copy.
func Apply(doc *ast.Document, values map[string]string) *ast.Document {
	out := doc.Clone()
	if out == nil {
		return nil
	}
	for _, node := range out.Content {
		applyNode(node, values)
	}
	return out
}

// applyNode substitutes tokens in one node's scanned fields, then recurses.
func applyNode(n *ast.Node, values map[string]string) {
	for _, field := range placeholder.ScannedFields {
		text, ok := n.StringSetting(field)
		if !ok {
			continue
		}
		if replaced := token.Replace(text, values); replaced != text {
			n.Settings[field] = replaced
		}
	}
	for _, child := range n.Elements {
		applyNode(child, values)
	}
}

// UnresolvedKeys returns the keys of tokens still present in the document's
// scanned fields, in document order with duplicates removed. A fully
// substituted document returns nil.
func UnresolvedKeys(doc *ast.Document) []string {
	var keys []string
	seen := make(map[string]bool)
	walkScanned(doc, func(text string) {
		for _, key := range token.Keys(text) {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	})
	return keys
}

// walkScanned visits every scanned string field in document order.
func walkScanned(doc *ast.Document, visit func(text string)) {
	if doc == nil {
		return
	}
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		for _, field := range placeholder.ScannedFields {
			if text, ok := n.StringSetting(field); ok {
				visit(text)
			}
		}
		for _, child := range n.Elements {
			walk(child)
		}
	}
	for _, node := range doc.Content {
		walk(node)
	}
}
