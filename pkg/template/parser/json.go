package parser

import (
	"bytes"
	"encoding/json"
)

// jsonDocument represents the intermediate structure for a full template export.
// It matches the JSON shape before transformation to the AST.
type jsonDocument struct {
	TemplateID string     `json:"template_id"`
	Title      string     `json:"title"`
	Content    []jsonNode `json:"content"`
}

// jsonNode represents an intermediate node structure.
// Settings stay untyped here; the builder copies them through as-is.
type jsonNode struct {
	ID          string         `json:"id"`
	ElType      string         `json:"elType"`
	WidgetType  string         `json:"widgetType"`
	Settings    map[string]any `json:"settings"`
	Elements    []jsonNode     `json:"elements"`
}

// decodeJSONBytes parses template JSON into the intermediate structure.
// A bare top-level array is accepted as a content list without metadata.
func decodeJSONBytes(data []byte) (*jsonDocument, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var content []jsonNode
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, err
		}
		return &jsonDocument{Content: content}, nil
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
