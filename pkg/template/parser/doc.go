// Package parser decodes page-builder template exports into the AST.
//
// Templates arrive as JSON exports from the page builder's storage layer.
// Two shapes are accepted: a full export object with a template identifier
// and a content array, or a bare content array (the raw element list some
// export paths produce). The parser handles JSON decoding, tree
// construction, and structural validation; the underlying storage syntax
// beyond the node/field model is out of scope.
//
// # Basic Usage
//
//	p := parser.NewParser()
//	doc, err := p.Parse("template.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parsing from memory:
//
//	doc, err := p.ParseBytes(data, "memory://export")
//
// # Error Reporting
//
// Structural problems are accumulated into an errors.ErrorList so a
// malformed export reports all of its problems at once, each with the
// tree path of the offending node.
package parser
