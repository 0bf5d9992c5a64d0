package parser

import (
	"fmt"

	"pagecraft-hq/callisto/pkg/template/ast"
	tplErrors "pagecraft-hq/callisto/pkg/template/errors"
)

// builder transforms the intermediate JSON structure into the AST.
// It accumulates structural errors so a malformed export reports all of
// its problems in one pass.
type builder struct {
	sourcePath string
	maxDepth   int
	errors     *tplErrors.ErrorList
}

// newBuilder creates a new builder for the given source path.
func newBuilder(sourcePath string, maxDepth int) *builder {
	return &builder{
		sourcePath: sourcePath,
		maxDepth:   maxDepth,
		errors:     tplErrors.NewErrorList(),
	}
}

// buildDocument constructs a Document from the intermediate structure.
func (b *builder) buildDocument(jd *jsonDocument) (*ast.Document, error) {
	doc := &ast.Document{
		TemplateID: jd.TemplateID,
		Title:      jd.Title,
		Content:    make([]*ast.Node, 0, len(jd.Content)),
	}

	for i, jn := range jd.Content {
		path := fmt.Sprintf("content[%d]", i)
		node := b.buildNode(jn, path, 0)
		if node != nil {
			doc.Content = append(doc.Content, node)
		}
	}

	if b.errors.HasErrors() {
		return nil, b.errors
	}
	return doc, nil
}

// buildNode constructs a single node and its subtree.
// Returns nil when the node is structurally invalid; the error is recorded.
func (b *builder) buildNode(jn jsonNode, path string, depth int) *ast.Node {
	if depth > b.maxDepth {
		b.errors.AddErrorWithSuggestion(
			tplErrors.ErrorTypeStructural,
			fmt.Sprintf("Node nesting exceeds maximum depth %d", b.maxDepth),
			ast.Location{File: b.sourcePath, Path: path},
			"Check the export for cyclic or pathologically deep nesting",
		)
		return nil
	}

	if jn.ElType == "" {
		b.errors.AddErrorWithSuggestion(
			tplErrors.ErrorTypeStructural,
			"Node is missing the elType field",
			ast.Location{File: b.sourcePath, Path: path},
			"Every element needs an elType (section, column, widget)",
		)
		return nil
	}

	node := &ast.Node{
		ID:          jn.ID,
		ElementType: jn.ElType,
		WidgetType:  jn.WidgetType,
		Settings:    jn.Settings,
	}

	for i, child := range jn.Elements {
		childPath := fmt.Sprintf("%s.elements[%d]", path, i)
		childNode := b.buildNode(child, childPath, depth+1)
		if childNode != nil {
			node.Elements = append(node.Elements, childNode)
		}
	}

	return node
}
