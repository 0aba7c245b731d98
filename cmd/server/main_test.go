package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contactform/backend/internal/handler"
	"github.com/contactform/backend/internal/repository"
	"github.com/contactform/backend/internal/service"
)

func newTestServer(t *testing.T, limit int) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := handler.New(service.NewContactService(repository.NewMemoryContactRepository()), log)
	rl := handler.NewRateLimiter(limit, 0)
	t.Cleanup(rl.Stop)
	srv := httptest.NewServer(newServerHandler(api, rl, log))
	t.Cleanup(srv.Close)
	return srv
}

func TestServerHandler_NonCanonicalPathsGetJSON(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := handler.New(service.NewContactService(repository.NewMemoryContactRepository()), log)
	rl := handler.NewRateLimiter(0, 0)
	defer rl.Stop()
	h := newServerHandler(api, rl, log)

	for _, path := range []string{"//hello", "/./hello", "/a/../hello"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("GET %s: expected JSON, got %q", path, ct)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("GET %s: body is not JSON: %v", path, err)
		}
	}
}

func TestServerHandler_RateLimitsTrailingSlashSubmissions(t *testing.T) {
	srv := newTestServer(t, 1)

	post := func(path string) int {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(`{"name":"Ada","message":"hi"}`))
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := post("/contact"); code != http.StatusOK {
		t.Fatalf("first submission: expected 200, got %d", code)
	}
	if code := post("/contact/"); code != http.StatusTooManyRequests {
		t.Errorf("POST /contact/: expected 429, got %d", code)
	}
}

func TestServerHandler_PreflightAndCORS(t *testing.T) {
	srv := newTestServer(t, 0)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/contact", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected origin *, got %q", got)
	}
}
