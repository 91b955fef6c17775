package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mandalnilabja/pagesmith/internal/config"
	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/handler"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/middleware"
)

const testOrigin = "https://app.example.com"

type stubProvider struct {
	calls int
	body  string
}

func (p *stubProvider) Name() string  { return "stub" }
func (p *stubProvider) Model() string { return "deepseek-coder" }

func (p *stubProvider) OpenStream(ctx context.Context, prompt string) (io.ReadCloser, error) {
	p.calls++
	return io.NopCloser(strings.NewReader(p.body)), nil
}

func newTestRouter(t *testing.T, prov *stubProvider, store storage.Storage) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := handler.NewRepo(nil, prov, store, nil, logger)
	return NewRouter(repo, &RouterOptions{
		AllowedOrigin:  testOrigin,
		EnableUsageLog: store != nil,
		Logger:         logger,
	})
}

func TestRouter_Generate(t *testing.T) {
	prov := &stubProvider{body: `data: {"choices":[{"delta":{"content":"<h1>Hi</h1>"}}]}` + "\n\ndata: [DONE]\n\n"}
	router := newTestRouter(t, prov, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt":"hello"}`))
	req.Header.Set("Origin", testOrigin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Body.String(); got != `{"chunk":"<h1>Hi</h1>"}`+"\n" {
		t.Errorf("unexpected body %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != testOrigin {
		t.Error("expected CORS header for allowed origin")
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request ID header")
	}
}

func TestRouter_ForeignOriginNeverReachesProvider(t *testing.T) {
	prov := &stubProvider{}
	router := newTestRouter(t, prov, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"prompt":"hello"}`))
	req.Header.Set("Origin", "https://elsewhere.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if prov.calls != 0 {
		t.Errorf("expected no upstream call, got %d", prov.calls)
	}
}

func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Errorf("expected POST in allowed methods, got %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		usageLog   bool
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "root", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "generate wrong method", method: http.MethodGet, path: "/generate", wantStatus: http.StatusMethodNotAllowed},
		{name: "usage disabled", method: http.MethodGet, path: "/api/usage", wantStatus: http.StatusNotFound},
		{name: "usage enabled", method: http.MethodGet, path: "/api/usage", usageLog: true, wantStatus: http.StatusOK},
		{name: "logs enabled", method: http.MethodGet, path: "/api/logs", usageLog: true, wantStatus: http.StatusOK},
		{name: "daily enabled", method: http.MethodGet, path: "/api/usage/daily", usageLog: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var store storage.Storage
			if tt.usageLog {
				s, err := storage.NewSQLiteStorage(t.TempDir() + "/usage.db")
				if err != nil {
					t.Fatalf("failed to open storage: %v", err)
				}
				t.Cleanup(func() { s.Close() })
				store = s
			}
			router := newTestRouter(t, &stubProvider{}, store)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRouter_HealthBody(t *testing.T) {
	router := newTestRouter(t, &stubProvider{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "active" {
		t.Errorf("expected status active, got %q", body["status"])
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	cfg := &config.Config{ServerPort: ln.Addr().String()}
	srv := NewServer(cfg, newTestRouter(t, &stubProvider{}, nil), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
