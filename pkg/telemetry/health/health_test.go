package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_Liveness(t *testing.T) {
	c := New(0)

	status := c.CheckLiveness(context.Background())
	if status.Status != "ok" {
		t.Errorf("Status = %q, want ok", status.Status)
	}
	if status.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestChecker_ReadinessNoChecks(t *testing.T) {
	c := New(0)

	status := c.CheckReadiness(context.Background())
	if status.Status != "ready" {
		t.Errorf("Status = %q, want ready with no checks", status.Status)
	}
}

func TestChecker_ReadinessAllHealthy(t *testing.T) {
	c := New(0)
	c.RegisterCheck("library", func(ctx context.Context) error { return nil })
	c.RegisterCheck("audit", func(ctx context.Context) error { return nil })

	status := c.CheckReadiness(context.Background())
	if status.Status != "ready" {
		t.Errorf("Status = %q, want ready", status.Status)
	}
	if len(status.Checks) != 2 {
		t.Fatalf("len(Checks) = %d, want 2", len(status.Checks))
	}
	if status.Checks["library"].Status != "ok" {
		t.Errorf("library check = %q, want ok", status.Checks["library"].Status)
	}
}

func TestChecker_ReadinessDegraded(t *testing.T) {
	c := New(0)
	c.RegisterCheck("library", func(ctx context.Context) error { return nil })
	c.RegisterCheck("audit", func(ctx context.Context) error {
		return errors.New("database is locked")
	})

	status := c.CheckReadiness(context.Background())
	if status.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", status.Status)
	}
	audit := status.Checks["audit"]
	if audit.Status != "unhealthy" {
		t.Errorf("audit check = %q, want unhealthy", audit.Status)
	}
	if audit.Message != "database is locked" {
		t.Errorf("audit message = %q", audit.Message)
	}
}

func TestChecker_CheckTimeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	status := c.CheckReadiness(context.Background())
	if status.Status != "degraded" {
		t.Errorf("Status = %q, want degraded after timeout", status.Status)
	}
}

func TestChecker_UnregisterCheck(t *testing.T) {
	c := New(0)
	c.RegisterCheck("library", func(ctx context.Context) error { return nil })
	c.UnregisterCheck("library")

	if c.CheckCount() != 0 {
		t.Errorf("CheckCount() = %d, want 0", c.CheckCount())
	}
}

func TestLivenessHandler(t *testing.T) {
	c := New(0)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("Status = %q, want ok", status.Status)
	}
}

func TestReadinessHandler_Degraded(t *testing.T) {
	c := New(0)
	c.RegisterCheck("audit", func(ctx context.Context) error {
		return errors.New("unreachable")
	})

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlers_RejectPost(t *testing.T) {
	c := New(0)
	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestVersionHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	VersionHandler("1.2.3", "abc123", "2026-08-26")(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" {
		t.Errorf("unexpected version info: %+v", info)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should be populated")
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, New(0), "1.0.0", "abc", "2026-08-26")

	for _, path := range []string{"/health", "/ready", "/version"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}
