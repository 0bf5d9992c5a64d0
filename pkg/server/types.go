package server

import (
	"encoding/json"
	"time"

	"pagecraft-hq/callisto/pkg/template/ast"
)

// ExtractRequest is the body of POST /v1/extract. Template holds a raw
// page-builder export.
type ExtractRequest struct {
	Template json.RawMessage `json:"template"`
}

// SubstituteRequest is the body of POST /v1/substitute.
type SubstituteRequest struct {
	Template json.RawMessage   `json:"template"`
	Values   map[string]string `json:"values"`
}

// TemplateSubstituteRequest is the body of POST /v1/templates/{id}/substitute.
type TemplateSubstituteRequest struct {
	Values map[string]string `json:"values"`
}

// SubstituteResponse carries a substituted document. Unresolved lists the
// placeholder keys still present in the output.
type SubstituteResponse struct {
	Document   *ast.Document `json:"document"`
	Unresolved []string      `json:"unresolved,omitempty"`
}

// TemplateSummary is one entry in the template list.
type TemplateSummary struct {
	ID           string    `json:"id"`
	Revision     string    `json:"revision"`
	Name         string    `json:"name"`
	Placeholders int       `json:"placeholders"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TemplateListResponse is the body of GET /v1/templates.
type TemplateListResponse struct {
	Templates []TemplateSummary `json:"templates"`
	Count     int               `json:"count"`
}

// ReloadResponse is the body of POST /v1/templates/reload.
type ReloadResponse struct {
	Loaded int `json:"loaded"`
}

// ErrorResponse is the JSON error envelope for all API errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
