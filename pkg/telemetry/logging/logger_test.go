package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg.Writer = buf
	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return logger, buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("failed to parse log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestLogger_JSONOutput(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	logger.Info("template loaded", "template_id", "landing-01", "placeholders", 12)

	entry := lastLogLine(t, buf)
	if entry["msg"] != "template loaded" {
		t.Errorf("msg = %v, want template loaded", entry["msg"])
	}
	if entry["template_id"] != "landing-01" {
		t.Errorf("template_id = %v, want landing-01", entry["template_id"])
	}
	if entry["placeholders"] != float64(12) {
		t.Errorf("placeholders = %v, want 12", entry["placeholders"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "warn", Format: "json"})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("levels below warn should be suppressed, got: %s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output: %s", out)
	}
}

func TestLogger_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	if err == nil {
		t.Error("New() should reject unknown levels")
	}
}

func TestLogger_InvalidFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	if err == nil {
		t.Error("New() should reject unknown formats")
	}
}

func TestLogger_ContextFields(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithTemplateID(ctx, "landing-01")
	ctx = WithOperation(ctx, "extract")

	logger.InfoContext(ctx, "extraction complete", "count", 3)

	entry := lastLogLine(t, buf)
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
	if entry["template_id"] != "landing-01" {
		t.Errorf("template_id = %v, want landing-01", entry["template_id"])
	}
	if entry["operation"] != "extract" {
		t.Errorf("operation = %v, want extract", entry["operation"])
	}
}

func TestLogger_With(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	logger.With("component", "library").Info("store opened")

	entry := lastLogLine(t, buf)
	if entry["component"] != "library" {
		t.Errorf("component = %v, want library", entry["component"])
	}
}

func TestLogger_RedactsValues(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json", RedactValues: true})

	logger.Info("substitution values received",
		"phone", "(11) 98765-4321",
		"email", "maria@clinica.com.br",
	)

	out := buf.String()
	if strings.Contains(out, "98765-4321") {
		t.Errorf("phone number should be redacted, got: %s", out)
	}
	if strings.Contains(out, "maria@clinica.com.br") {
		t.Errorf("email should be redacted, got: %s", out)
	}
}

func TestLogger_RedactionDisabled(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	logger.Info("value", "email", "maria@clinica.com.br")

	if !strings.Contains(buf.String(), "maria@clinica.com.br") {
		t.Error("redaction should be off unless enabled")
	}
}
