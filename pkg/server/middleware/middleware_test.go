package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pagecraft-hq/callisto/pkg/telemetry/logging"
)

func testLogger(t *testing.T, buf *bytes.Buffer) *logging.Logger {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}
	return logger
}

func TestRequestID_Generates(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Error("request ID should be in the context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("header = %q, context = %q, want identical", got, seen)
	}
}

func TestRequestID_PreservesClientID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "trace-42" {
		t.Errorf("request ID = %q, want client-supplied trace-42", seen)
	}
}

func TestRecovery_PanicReturns500(t *testing.T) {
	var buf bytes.Buffer
	handler := Recovery(testLogger(t, &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var resp map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp["error"]["code"] != "internal" {
		t.Errorf("error code = %q, want internal", resp["error"]["code"])
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("panic value should not reach the client")
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Error("panic value should be logged")
	}
}

func TestLogging_RecordsCompletion(t *testing.T) {
	var buf bytes.Buffer
	handler := Logging(testLogger(t, &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/templates", nil))

	out := buf.String()
	if !strings.Contains(out, "Request completed") {
		t.Fatalf("log output = %q, want completion entry", out)
	}
	if !strings.Contains(out, `"status":418`) {
		t.Errorf("log output = %q, want status field", out)
	}
	if !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("log output = %q, want WARN for a 4xx", out)
	}
}

func TestRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	var pattern string
	mux.HandleFunc("GET /v1/templates/{id}", func(w http.ResponseWriter, r *http.Request) {
		pattern = routePattern(r)
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/templates/hero", nil))

	if pattern != "/v1/templates/{id}" {
		t.Errorf("routePattern() = %q, want /v1/templates/{id}", pattern)
	}
}
