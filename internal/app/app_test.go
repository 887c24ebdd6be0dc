package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"people-monitor-go/internal/config"
	"people-monitor-go/pkg/logger"
)

func testConfig(driver string) config.Config {
	cfg := config.Default()
	cfg.Store.Driver = driver
	cfg.Auth.Skip = true
	return cfg
}

func serve(t *testing.T, application *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	application.HTTPServer().Handler.ServeHTTP(rec, req)
	return rec
}

func TestNewWithMemoryStore(t *testing.T) {
	application, err := New(testConfig(config.DriverMemory), logger.Discard())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer application.Close()

	if got := application.HTTPServer().Addr; got != ":8080" {
		t.Fatalf("expected :8080, got %q", got)
	}

	rec := serve(t, application, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = serve(t, application, http.MethodPost, "/api/events", `{"title":"Flood"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = serve(t, application, http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), "people_monitor_events_created_total 1") {
		t.Fatalf("expected events counter in exposition, got:\n%s", rec.Body.String())
	}
}

func TestNewWithoutMetrics(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.Metrics.Enabled = false

	application, err := New(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := serve(t, application, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics, got %d", rec.Code)
	}
}

func TestNewWithSQLiteStore(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "people.db")

	application, err := New(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer application.Close()

	rec := serve(t, application, http.MethodPost, "/api/events", `{"title":"Quake","calamity_type":"earthquake"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = serve(t, application, http.MethodGet, "/api/events", "")
	if !strings.Contains(rec.Body.String(), `"calamity_type":"earthquake"`) {
		t.Fatalf("expected stored event in listing, got %s", rec.Body.String())
	}
}

func TestMigrateMemoryIsNoop(t *testing.T) {
	if err := Migrate(config.StoreConfig{Driver: config.DriverMemory}, logger.Discard()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCloseReleasesStore(t *testing.T) {
	memory, err := New(testConfig(config.DriverMemory), logger.Discard())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := memory.Close(); err != nil {
		t.Fatalf("expected memory close to succeed, got %v", err)
	}

	cfg := testConfig(config.DriverSQLite)
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "people.db")
	application, err := New(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := application.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}

	sqlDB, err := application.db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	if err := sqlDB.Ping(); err == nil {
		t.Fatalf("expected closed store to reject ping, got nil")
	}
}
