package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vaebz/lightrag-mcp/internal/action"
	appconfig "github.com/vaebz/lightrag-mcp/internal/config"
	"github.com/vaebz/lightrag-mcp/internal/event"
)

// stubGateway returns scripted results for both gateway halves.
type stubGateway struct {
	generateText string
	generateErr  error
	embedVec     []float64
	embedErr     error
}

func (g *stubGateway) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generateText, g.generateErr
}

func (g *stubGateway) Embed(ctx context.Context, text string) ([]float64, error) {
	return g.embedVec, g.embedErr
}

func setupTestServer(t *testing.T, gw *stubGateway) (*Server, *event.Queue) {
	t.Helper()

	appCfg := appconfig.Default()
	queue := event.NewQueue()
	dispatcher := action.NewDispatcher(appCfg, queue, gw)
	srv := New(DefaultConfig(), appCfg, queue, dispatcher)
	return srv, queue
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGateway{})

	w := doRequest(srv, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %q", body["status"])
	}
}

func TestBanner(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGateway{})

	w := doRequest(srv, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain" {
		t.Errorf("expected text/plain, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "LightRAG MCP Server Running") {
		t.Errorf("unexpected banner: %q", w.Body.String())
	}
}

func TestCapabilitiesEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGateway{})

	w := doRequest(srv, httptest.NewRequest("GET", "/capabilities", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body event.Event
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != event.StatusOK {
		t.Errorf("expected ok status, got %q", body.Status)
	}
	if _, ok := body.Data["capabilities"]; !ok {
		t.Error("expected capabilities list")
	}
	if _, ok := body.Data["models"]; !ok {
		t.Error("expected models map")
	}
}

func TestToolsEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGateway{})

	w := doRequest(srv, httptest.NewRequest("GET", "/tools", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body event.Event
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	tools, ok := body.Data["tools"].([]any)
	if !ok || len(tools) != 2 {
		t.Errorf("expected 2 tools, got %v", body.Data["tools"])
	}
}

func TestPostMalformedJSON(t *testing.T) {
	srv, queue := setupTestServer(t, &stubGateway{})

	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	w := doRequest(srv, req)

	if w.Code != http.StatusOK {
		t.Errorf("canonical malformed-JSON response is HTTP 200, got %d", w.Code)
	}

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "error" {
		t.Errorf("expected error status, got %q", body.Status)
	}
	if !strings.Contains(body.Message, "Invalid JSON data") {
		t.Errorf("unexpected message: %q", body.Message)
	}
	if queue.Len() != 0 {
		t.Errorf("malformed input must publish no event, got %d", queue.Len())
	}
}

func TestPostMalformedJSON_Strict(t *testing.T) {
	srv, queue := setupTestServer(t, &stubGateway{})
	srv.appConfig.StrictJSON = true

	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	w := doRequest(srv, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("strict mode returns 400, got %d", w.Code)
	}
	if queue.Len() != 0 {
		t.Errorf("malformed input must publish no event, got %d", queue.Len())
	}
}

func TestPostEmptyBody(t *testing.T) {
	srv, queue := setupTestServer(t, &stubGateway{})

	req := httptest.NewRequest("POST", "/", bytes.NewReader(nil))
	w := doRequest(srv, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body event.Event
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != event.StatusOK {
		t.Errorf("expected ok, got %q", body.Status)
	}
	if body.Message != "Empty request" {
		t.Errorf("unexpected message: %q", body.Message)
	}
	if queue.Len() != 1 {
		t.Errorf("expected one published event, got %d", queue.Len())
	}
}

// POST query with an unreachable backend: HTTP-level success carrying a
// degraded result that names the original query.
func TestPostQuery_BackendUnreachable(t *testing.T) {
	srv, queue := setupTestServer(t, &stubGateway{generateErr: errors.New("dial tcp: connection refused")})

	payload := `{"action":"query","data":{"query":"What is VAEBZ?"}}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(srv, req)

	if w.Code != http.StatusOK {
		t.Fatalf("degraded results still complete with 200, got %d", w.Code)
	}

	var body event.Event
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != event.StatusError {
		t.Errorf("expected error status, got %q", body.Status)
	}
	response, _ := body.Data["response"].(string)
	if !strings.Contains(response, "unable to answer") || !strings.Contains(response, "'What is VAEBZ?'") {
		t.Errorf("degraded response must apologize and name the query, got %q", response)
	}
	sources, ok := body.Data["sources"].([]any)
	if !ok || len(sources) != 0 {
		t.Errorf("expected empty sources, got %v", body.Data["sources"])
	}
	if queue.Len() != 1 {
		t.Errorf("expected one published event, got %d", queue.Len())
	}
}

func TestPostQuery_Success(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGateway{generateText: "VAEBZ is an AI infrastructure company."})

	payload := `{"action":"query","data":{"query":"What is VAEBZ?"}}`
	req := httptest.NewRequest("POST", "/some/other/path", strings.NewReader(payload))
	w := doRequest(srv, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body event.Event
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != event.StatusOK {
		t.Fatalf("expected ok, got %q: %s", body.Status, body.Message)
	}
	if body.Data["response"] != "VAEBZ is an AI infrastructure company." {
		t.Errorf("unexpected response: %v", body.Data["response"])
	}
}

func TestPostUnknownAction(t *testing.T) {
	srv, _ := setupTestServer(t, &stubGateway{})

	payload := `{"action":"reindex","data":{}}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
	w := doRequest(srv, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body event.Event
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != event.StatusOK {
		t.Errorf("unknown actions are acknowledged, got %q", body.Status)
	}
	if !strings.Contains(body.Message, "reindex") {
		t.Errorf("acknowledgment should echo the action, got %q", body.Message)
	}
}
