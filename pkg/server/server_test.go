package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagecraft-hq/callisto/pkg/config"
	"pagecraft-hq/callisto/pkg/library/manager"
	"pagecraft-hq/callisto/pkg/library/storage"
	"pagecraft-hq/callisto/pkg/placeholder"
)

const heroExport = `{
	"template_id": "hero-landing",
	"title": "Hero Landing",
	"content": [
		{
			"id": "sec1",
			"elType": "section",
			"elements": [
				{
					"id": "w1",
					"elType": "widget",
					"widgetType": "heading",
					"settings": {"title": "{{BUSINESS_NAME}} - {{SPECIALTY}}"}
				},
				{
					"id": "w2",
					"elType": "widget",
					"widgetType": "button",
					"settings": {"button_text": "{{PRIMARY_CTA}}"}
				}
			]
		}
	]
}`

// newTestServer builds a server over an in-memory library seeded with the
// hero template.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := storage.NewMemoryStore()
	mgr := manager.New(store)

	path := filepath.Join(t.TempDir(), "hero.json")
	if err := os.WriteFile(path, []byte(heroExport), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := mgr.LoadFile(context.Background(), path); err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	return New(config.Default(), mgr, nil).WithVersionInfo("1.0.0-test", "abc123", "2026-08-26")
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rec.Body.String())
	}
	return resp.Error
}

func TestServer_Extract(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/v1/extract", map[string]any{
		"template": json.RawMessage(heroExport),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var registry placeholder.TemplatePlaceholders
	if err := json.Unmarshal(rec.Body.Bytes(), &registry); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if registry.TemplateID != "hero-landing" {
		t.Errorf("TemplateID = %q", registry.TemplateID)
	}
	wantKeys := []string{"BUSINESS_NAME", "SPECIALTY", "PRIMARY_CTA"}
	if got := registry.Keys(); len(got) != len(wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}
	for i, key := range registry.Keys() {
		if key != wantKeys[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, key, wantKeys[i])
		}
	}
	if m := registry.Get("PRIMARY_CTA"); m == nil || m.Type != placeholder.TypeCTA {
		t.Errorf("PRIMARY_CTA mapping = %+v, want cta type", m)
	}
}

func TestServer_Extract_BadRequests(t *testing.T) {
	handler := newTestServer(t).Handler()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"invalid json", `{not json`, "invalid_json"},
		{"missing template", `{}`, "missing_template"},
		{"structurally invalid", `{"template": {"content": [{"id": "x"}]}}`, "invalid_template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if detail := decodeError(t, rec); detail.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", detail.Code, tt.wantCode)
			}
		})
	}
}

func TestServer_Substitute(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/v1/substitute", map[string]any{
		"template": json.RawMessage(heroExport),
		"values": map[string]string{
			"BUSINESS_NAME": "Acme",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp SubstituteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	title, ok := resp.Document.Content[0].Elements[0].StringSetting("title")
	if !ok || title != "Acme - {{SPECIALTY}}" {
		t.Errorf("title = %q, want partial substitution", title)
	}
	if len(resp.Unresolved) != 2 {
		t.Errorf("Unresolved = %v, want SPECIALTY and PRIMARY_CTA", resp.Unresolved)
	}
}

func TestServer_ListTemplates(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/v1/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp TemplateListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Templates) != 1 {
		t.Fatalf("Count = %d, want 1", resp.Count)
	}
	summary := resp.Templates[0]
	if summary.ID != "hero-landing" || summary.Name != "Hero Landing" || summary.Placeholders != 3 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestServer_GetTemplate(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/v1/templates/hero-landing", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/v1/templates/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if detail := decodeError(t, rec); detail.Code != "not_found" {
		t.Errorf("error code = %q, want not_found", detail.Code)
	}
}

func TestServer_TemplatePlaceholders(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/v1/templates/hero-landing/placeholders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var registry placeholder.TemplatePlaceholders
	if err := json.Unmarshal(rec.Body.Bytes(), &registry); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if registry.Count() != 3 {
		t.Errorf("Count() = %d, want 3", registry.Count())
	}
	if m := registry.Get("BUSINESS_NAME"); m == nil || !m.Required {
		t.Errorf("BUSINESS_NAME = %+v, want required", m)
	}
}

func TestServer_TemplateSubstitute(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/v1/templates/hero-landing/substitute", map[string]any{
		"values": map[string]string{
			"BUSINESS_NAME": "Acme",
			"SPECIALTY":     "Dermatologia",
			"PRIMARY_CTA":   "Agende agora",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp SubstituteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", resp.Unresolved)
	}

	title, _ := resp.Document.Content[0].Elements[0].StringSetting("title")
	if title != "Acme - Dermatologia" {
		t.Errorf("title = %q", title)
	}
}

func TestServer_Reload_NoDirConfigured(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/v1/templates/reload", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 with no templates dir", rec.Code)
	}
	if detail := decodeError(t, rec); detail.Code != "reload_failed" {
		t.Errorf("error code = %q, want reload_failed", detail.Code)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/v1/templates", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/templates", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("X-Request-ID = %q, want client-supplied to be preserved", got)
	}
}

func TestServer_Probes(t *testing.T) {
	handler := newTestServer(t).Handler()

	for _, path := range []string{"/health", "/ready"} {
		rec := doJSON(t, handler, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}

	rec := doJSON(t, handler, http.MethodGet, "/version", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /version status = %d, want 200", rec.Code)
	}
	var info map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info["version"] != "1.0.0-test" {
		t.Errorf("version = %q", info["version"])
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/v1/extract", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/extract status = %d, want 405", rec.Code)
	}
}
