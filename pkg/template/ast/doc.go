// Package ast provides the in-memory tree model for page-builder templates.
//
// A template is a Document: a tree of Nodes as exported by the page builder.
// Each Node carries an element type (section, column, widget), an optional
// widget type (heading, text-editor, button, ...), a settings map holding the
// element's configured values, and an ordered list of child nodes.
//
// # Core Types
//
// Document: Root of the tree, tagged with a template identifier
//
// Node: One element of the tree with typed settings and optional children
//
// Location: Source position of a node for error reporting (file, tree path)
//
// # Basic Usage
//
// Parse a template export and traverse the tree:
//
//	doc, err := parser.Parse("template.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, node := range doc.Content {
//	    fmt.Println("Node:", node.ID, "kind:", node.Kind())
//	}
//
// # Immutability
//
// Documents handed to the placeholder engine are read-only. Operations that
// rewrite a document (substitution) work on a deep copy obtained via Clone,
// never on the original tree.
package ast
