package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/citemap/pkg/cache"
	"github.com/matzehuels/citemap/pkg/graph"
	"github.com/matzehuels/citemap/pkg/observability"
	"github.com/matzehuels/citemap/pkg/pipeline"
)

const twoClusters = `{
	"nodes": [
		{"id": "a", "subject": "x"}, {"id": "b", "subject": "x"}, {"id": "c", "subject": "x"},
		{"id": "d", "subject": "y"}, {"id": "e", "subject": "y"}
	],
	"links": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}, {"from": "d", "to": "e"}]
}`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewMemoryCache(16), logger)
	return New(runner, pipeline.DefaultOptions(), opts, logger)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, DefaultOptions()), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, DefaultOptions())
	rec := do(t, s, http.MethodPost, "/v1/analyze", twoClusters)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Layout.Summary.Components != 2 || resp.Stats.Vertices != 5 {
		t.Errorf("summary = %+v, stats = %+v", resp.Layout.Summary, resp.Stats)
	}
	if err := resp.Layout.Validate(); err != nil {
		t.Errorf("layout invalid: %v", err)
	}
	if resp.CacheHit {
		t.Error("first request should not hit the cache")
	}

	rec = do(t, s, http.MethodPost, "/v1/analyze", twoClusters)
	var again analyzeResponse
	_ = json.NewDecoder(rec.Body).Decode(&again)
	if !again.CacheHit {
		t.Error("repeated request should hit the cache")
	}
}

func TestAnalyzeAdjacencyAndOptions(t *testing.T) {
	body := `{"adjacency": [[1], [], [3], []], "options": {"seed": 7, "symmetrize": false, "layout": {"min_radius": 10}}}`
	rec := do(t, newTestServer(t, DefaultOptions()), http.MethodPost, "/v1/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp analyzeResponse
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Layout.Seed != 7 {
		t.Errorf("seed = %d, want 7", resp.Layout.Seed)
	}
	// Along out-edges 0 reaches 1 and 2 reaches 3.
	if resp.Layout.Summary.Components != 2 {
		t.Errorf("components = %d, want 2", resp.Layout.Summary.Components)
	}
	if resp.Layout.Nodes[3].ID != "3" {
		t.Errorf("adjacency nodes should be named by index, got %q", resp.Layout.Nodes[3].ID)
	}
	if resp.Layout.Width != pipeline.DefaultWidth {
		t.Errorf("width = %g, unspecified options should keep defaults", resp.Layout.Width)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		status   int
	}{
		{"Malformed", `{"nodes": [`, "INVALID_INPUT", 400},
		{"UnknownField", `{"vertices": []}`, "INVALID_INPUT", 400},
		{"UnknownEndpoint", `{"nodes": [{"id": "a"}], "links": [{"from": "a", "to": "z"}]}`, "INVALID_GRAPH", 400},
		{"DuplicateID", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, "INVALID_INPUT", 400},
		{"AdjacencyOutOfRange", `{"adjacency": [[5]]}`, "INVALID_GRAPH", 400},
		{"Both", `{"adjacency": [[]], "nodes": [{"id": "a"}]}`, "INVALID_INPUT", 400},
		{"BadOptions", `{"adjacency": [[]], "options": {"width": -1}}`, "INVALID_OPTIONS", 400},
		{"BadOptionType", `{"adjacency": [[]], "options": {"seed": "x"}}`, "INVALID_OPTIONS", 400},
		{"MaxAttemptsOverLimit", `{"adjacency": [[]], "options": {"layout": {"max_attempts": 2000000000}}}`, "INVALID_OPTIONS", 400},
		{"WidthOutOfRange", `{"adjacency": [[]], "options": {"width": 1e400}}`, "INVALID_OPTIONS", 400},
	}
	s := newTestServer(t, DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/analyze", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := decodeError(t, rec); got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (%s)", got.Code, tt.wantCode, got.Message)
			}
		})
	}
}

func TestMaxAttemptsLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttempts = 2000
	s := newTestServer(t, opts)

	rec := do(t, s, http.MethodPost, "/v1/analyze", `{"adjacency": [[1], []], "options": {"layout": {"max_attempts": 2000}}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("at limit: status = %d, body = %s", rec.Code, rec.Body)
	}
	rec = do(t, s, http.MethodPost, "/v1/subjects", `{"adjacency": [[1], []], "options": {"layout": {"max_attempts": 2001}}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("over limit: status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != "INVALID_OPTIONS" || !strings.Contains(got.Message, "2000") {
		t.Errorf("error = %+v", got)
	}
}

func TestMaxAttemptsLimitCoversDefaults(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttempts = 10
	// The pipeline default of 1000 attempts is above the configured limit.
	rec := do(t, newTestServer(t, opts), http.MethodPost, "/v1/analyze", `{"adjacency": [[1], []]}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestBodyLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxBodyBytes = 16
	rec := do(t, newTestServer(t, opts), http.MethodPost, "/v1/analyze", twoClusters)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestSubjects(t *testing.T) {
	rec := do(t, newTestServer(t, DefaultOptions()), http.MethodPost, "/v1/subjects", twoClusters)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp []subjectResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp) != 2 || resp[0].Subject != "x" || resp[1].Subject != "y" {
		t.Fatalf("subjects = %+v", resp)
	}
	if len(resp[0].Layout.Nodes) != 3 || len(resp[1].Layout.Nodes) != 2 {
		t.Error("subject layouts should hold only their own papers")
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t, DefaultOptions())
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "graph G {"},
		{"json", "application/json", "{"},
		{"coverage", "image/svg+xml", "<svg"},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/render?format="+tt.format, twoClusters)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("content type = %q, want %q", got, tt.contentType)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts %q", rec.Body.String()[:min(20, rec.Body.Len())])
			}
			if rec.Header().Get("X-Run-ID") == "" {
				t.Error("missing run id header")
			}
		})
	}
}

func TestRenderLayout(t *testing.T) {
	l := graph.Layout{
		Width: 100, Height: 100,
		Regions: []graph.Region{{Component: 0, Radius: 20, Share: 1}},
		Nodes:   []graph.Node{{ID: "p", Component: 0}},
	}
	body, _ := json.Marshal(map[string]any{"layout": l, "render": map[string]any{"title": "Mine", "edges": false}})
	rec := do(t, newTestServer(t, DefaultOptions()), http.MethodPost, "/v1/render?format=svg", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), ">Mine<") {
		t.Error("render options should override the title")
	}

	l.Nodes[0].Component = 3
	body, _ = json.Marshal(map[string]any{"layout": l})
	rec = do(t, newTestServer(t, DefaultOptions()), http.MethodPost, "/v1/render", string(body))
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Code != "INVALID_FORMAT" {
		t.Errorf("invalid layout: status = %d", rec.Code)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	rec := do(t, newTestServer(t, DefaultOptions()), http.MethodPost, "/v1/render?format=gif", twoClusters)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != "INVALID_OPTIONS" {
		t.Errorf("code = %s", got.Code)
	}
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(t, DefaultOptions()).Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowedOrigins = []string{"https://example.org"}
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	newTestServer(t, opts).Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("allow origin = %q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t, DefaultOptions()), http.MethodGet, "/v1/analyze", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

type recordingServerHooks struct {
	observability.NoopServerHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingServerHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	s := newTestServer(t, DefaultOptions())
	do(t, s, http.MethodPost, "/v1/analyze", twoClusters)
	do(t, s, http.MethodPost, "/v1/analyze", "{")

	if len(hooks.routes) != 2 {
		t.Fatalf("responses = %d, want 2", len(hooks.routes))
	}
	if hooks.routes[0] != "/v1/analyze" {
		t.Errorf("route = %q, want the route pattern", hooks.routes[0])
	}
	if hooks.status[0] != 200 || hooks.status[1] != 400 {
		t.Errorf("statuses = %v", hooks.status)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	opts := DefaultOptions()
	opts.Addr = "127.0.0.1:0"
	s := newTestServer(t, opts)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
