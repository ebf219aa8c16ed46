package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	RespondWithMessage(w, "ok")
})

func TestCORSAllowsAnyOrigin(t *testing.T) {
	handler := CORSMiddleware()(okHandler)

	for _, origin := range []string{"http://localhost:5173", "https://dashboard.example.com"} {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("origin %s: expected Access-Control-Allow-Origin *, got %q", origin, got)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORSMiddleware()(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/products/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != http.MethodDelete {
		t.Errorf("expected DELETE to be allowed, got %q", got)
	}
	if w.Body.Len() != 0 {
		t.Errorf("preflight must not reach the handler, body %q", w.Body.String())
	}
}

func TestLoggingMiddlewareLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&buf),
			zapcore.DebugLevel,
		)

		status := tc.status
		handler := middleware.RequestID(LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			RespondWithError(w, status, "x")
		})))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("status %d: log entry is not JSON: %v", tc.status, err)
		}
		if entry["level"] != tc.level {
			t.Errorf("status %d: expected level %s, got %v", tc.status, tc.level, entry["level"])
		}
		if entry["status"] != float64(tc.status) {
			t.Errorf("status %d: logged status %v", tc.status, entry["status"])
		}
		if entry["request_id"] == "" || entry["request_id"] == nil {
			t.Errorf("status %d: missing request id", tc.status)
		}
		if entry["path"] != "/api/stats" {
			t.Errorf("status %d: unexpected path %v", tc.status, entry["path"])
		}
	}
}
