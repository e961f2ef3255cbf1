package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vaebz/lightrag-mcp/internal/action"
	"github.com/vaebz/lightrag-mcp/internal/event"
	"github.com/vaebz/lightrag-mcp/internal/logging"
	"github.com/vaebz/lightrag-mcp/internal/tool"
)

// health always reports ok, regardless of prior server state.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "LightRAG MCP Server is healthy",
	})
}

// banner is the plain-text liveness response for non-streaming GETs.
func (s *Server) banner(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "LightRAG MCP Server Running")
}

// capabilitiesSnapshot serves the current capability snapshot as JSON.
func (s *Server) capabilitiesSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, action.Capabilities(s.appConfig))
}

// toolsSnapshot serves the static tool catalog as JSON.
func (s *Server) toolsSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, event.OK("Tools retrieved", map[string]any{
		"tools": tool.Catalog(),
	}))
}

// handleAction parses a synchronous request and routes it through the
// dispatcher. The HTTP status is 200 even for logically-failed actions;
// failure lives in the body's status field. The one exception is malformed
// JSON under strict mode, which gets a 400.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeJSON(w, http.StatusOK, s.dispatcher.Acknowledge("Empty request"))
		return
	}

	var req action.Request
	if err := json.Unmarshal(body, &req); err != nil {
		logging.Error().Err(err).Msg("received non-JSON request body")

		// Malformed input publishes no event.
		status := http.StatusOK
		if s.appConfig.StrictJSON {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorBody{
			Status:  event.StatusError,
			Message: "Invalid JSON data",
		})
		return
	}

	writeJSON(w, http.StatusOK, s.dispatcher.Dispatch(r.Context(), req))
}
