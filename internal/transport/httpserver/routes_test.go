package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"people-monitor-go/internal/config"
	eventdomain "people-monitor-go/internal/domain/event"
	"people-monitor-go/internal/domain/importer"
	"people-monitor-go/internal/domain/stats"
	"people-monitor-go/internal/repository/inmemory"
	"people-monitor-go/internal/transport/httpserver/handler"
	commonhandler "people-monitor-go/internal/transport/httpserver/handler/common"
	eventshandler "people-monitor-go/internal/transport/httpserver/handler/events"
	"people-monitor-go/pkg/logger"
	"people-monitor-go/pkg/metrics"
)

func newTestRouter(t *testing.T, cfg config.Config, manager *metrics.Manager) http.Handler {
	t.Helper()
	log := logger.Discard()
	events := eventdomain.NewService(inmemory.NewEventRepository())
	handlers := handler.New(
		commonhandler.New(log),
		eventshandler.New(events, importer.NewService(events, 10, nil), stats.NewService(events), 0, log),
	)
	return NewRouter(cfg, handlers, nil, manager, log)
}

func TestRouterPublicRoutes(t *testing.T) {
	router := newTestRouter(t, config.Default(), metrics.NewManager())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/respond/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected public respond view to skip auth and 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `route="/api/health"`) {
		t.Fatalf("expected health request in metrics, got:\n%s", rec.Body.String())
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	router := newTestRouter(t, config.Default(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected unconfigured auth to fail closed, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected no metrics route, got %d", rec.Code)
	}
}

func TestRouterMockUser(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.Skip = true
	router := newTestRouter(t, cfg, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"title":"Drill"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), cfg.Auth.MockUserID) {
		t.Fatalf("expected mock user as owner, got %s", rec.Body.String())
	}
}

func TestRouterPreflight(t *testing.T) {
	router := newTestRouter(t, config.Default(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestNewServer(t *testing.T) {
	srv := New(config.HTTPConfig{Port: "9000"}, http.NotFoundHandler())
	if srv.Addr != ":9000" {
		t.Fatalf("expected :9000, got %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout <= 0 {
		t.Fatalf("expected a read header timeout")
	}
}
