package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inventory-api/internal/config"
	"inventory-api/internal/database"

	"go.uber.org/zap"
)

// newTestServer points the pool at a closed port so no query can succeed
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Inventory</h1>"), 0o644); err != nil {
		t.Fatalf("Failed to write index.html: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('inventory')"), 0o644); err != nil {
		t.Fatalf("Failed to write app.js: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:      "3001",
			Env:       "development",
			StaticDir: staticDir,
		},
		Database: config.DatabaseConfig{
			Host:    "127.0.0.1",
			Port:    "1",
			User:    "nobody",
			Name:    "missing",
			SSLMode: "disable",
		},
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	srv := NewServer(cfg, zap.NewNop(), db)
	t.Cleanup(func() { srv.Close() })

	return srv, staticDir
}

func TestServerAddress(t *testing.T) {
	srv, _ := newTestServer(t)

	if srv.Addr != ":3001" {
		t.Errorf("expected :3001, got %s", srv.Addr)
	}
}

func TestStaticFilesServedForUnmatchedPaths(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := map[string]string{
		"/":       "<h1>Inventory</h1>",
		"/app.js": "console.log('inventory')",
	}

	for path, expected := range cases {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
			continue
		}
		if got := w.Body.String(); got != expected {
			t.Errorf("%s: expected %q, got %q", path, expected, got)
		}
	}

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing.css", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing asset, got %d", w.Code)
	}
}

func TestCORSHeadersOnAPIRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
}

func TestDatabaseFailureSurfacesAsJSONError(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if strings.TrimSpace(body["error"]) == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestHealthReportsUnavailableDatabase(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health body: %v", err)
	}
	if body["status"] != "down" {
		t.Errorf("expected status down, got %v", body)
	}
}

func TestUnsupportedMethodOnAPIRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/products/1", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	if body["error"] != "Method not allowed" {
		t.Errorf("unexpected error %v", body)
	}
}

func TestUnknownAPIPathReturnsJSONNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/products/1/x", "/api/unknown", "/api"} {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
			continue
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: expected application/json, got %q", path, ct)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: failed to decode error body %q: %v", path, w.Body.String(), err)
			continue
		}
		if body["error"] != "Not found" {
			t.Errorf("%s: unexpected error %v", path, body)
		}
	}
}

func TestCloseReleasesDatabasePool(t *testing.T) {
	srv, _ := newTestServer(t)

	if err := srv.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := srv.db.DB().Ping(); err == nil || !strings.Contains(err.Error(), "database is closed") {
		t.Errorf("expected a closed pool after Close, got %v", err)
	}
}
