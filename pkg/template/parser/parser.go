package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pagecraft-hq/callisto/pkg/template/ast"
	tplErrors "pagecraft-hq/callisto/pkg/template/errors"
)

// Parser parses page-builder template exports into Documents.
// It handles JSON decoding, tree construction, and structural validation.
type Parser struct {
	// Configuration
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
	maxDepth    int   // Maximum node nesting depth (default: 32)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
		maxDepth:    32,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum node nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse parses a template export at the given path and returns the Document.
// It returns an error if the file cannot be read, has invalid JSON syntax,
// or contains structural errors.
//
// When the export carries no template identifier, the file's base name
// (without extension) is used.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &tplErrors.Error{
			Type:     tplErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &tplErrors.Error{
			Type:     tplErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &tplErrors.Error{
			Type:     tplErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	doc, err := p.ParseBytes(data, path)
	if err != nil {
		return nil, err
	}

	if doc.TemplateID == "" {
		base := filepath.Base(path)
		doc.TemplateID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return doc, nil
}

// ParseBytes parses template JSON from a byte slice.
// This is useful for testing or parsing exports held in memory.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &tplErrors.Error{
			Type:     tplErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Data size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{File: sourcePath},
		}
	}

	jd, err := decodeJSONBytes(data)
	if err != nil {
		return nil, &tplErrors.Error{
			Type:       tplErrors.ErrorTypeSyntax,
			Message:    fmt.Sprintf("JSON parsing failed: %v", err),
			Location:   ast.Location{File: sourcePath},
			Suggestion: "Check the export for truncation or invalid JSON syntax",
		}
	}

	b := newBuilder(sourcePath, p.maxDepth)
	return b.buildDocument(jd)
}
