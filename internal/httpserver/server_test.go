package httpserver

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-curatorform/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}
}

func TestServer_RoutesHealthAndForm(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	srv, err := New(testConfig(), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if srv.FormPath != "/curator" {
		t.Fatalf("unexpected form path %q", srv.FormPath)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/curator?format=json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected form response, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"playlists.0.link"`) {
		t.Fatalf("expected form model in body: %s", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "http_request") {
		t.Fatalf("expected request log, got %q", logs.String())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv, err := New(testConfig(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestNew_RequiresConfig(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
