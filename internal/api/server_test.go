package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

const testCSV = "region,city,population\nNorth,Oslo,700\nNorth,Bergen,300\nSouth,Rome,2800\nSouth,Naples,960\n"

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	return NewServer(runner, logger)
}

func renderBody(t *testing.T, formats ...string) string {
	t.Helper()
	body, err := json.Marshal(pipeline.Options{
		Data:    testCSV,
		Area:    "population",
		Levels:  []string{"region", "city"},
		Formats: formats,
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}

func TestHandleVersion(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal version: %v", err)
	}
	if got["version"] == "" {
		t.Error("version should not be empty")
	}
}

func TestHandleRenderSingleFormat(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(renderBody(t, "json")))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), "Oslo") {
		t.Error("layout JSON should contain tile names")
	}
}

func TestHandleRenderRequestID(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("response should carry a generated request ID")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "client-id")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "client-id" {
		t.Errorf("request ID = %q, want client-id preserved", got)
	}
}

func TestHandleRenderMissingData(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"area":"population"}`))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp.Code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", resp.Code)
	}
}

func TestHandleRenderMalformedBody(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRenderBadColumn(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(pipeline.Options{
		Data:    testCSV,
		Area:    "missing",
		Levels:  []string{"region"},
		Formats: []string{"json"},
	})
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
}
