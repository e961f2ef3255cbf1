package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/vaebz/lightrag-mcp/internal/action"
	appconfig "github.com/vaebz/lightrag-mcp/internal/config"
	"github.com/vaebz/lightrag-mcp/internal/event"
	"github.com/vaebz/lightrag-mcp/internal/logging"
	"github.com/vaebz/lightrag-mcp/internal/tool"
)

// sseWriter wraps http.ResponseWriter for SSE.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	rc      *http.ResponseController
}

// newSSEWriter creates a new SSE writer.
func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	// Use ResponseController for more reliable flushing (Go 1.20+)
	rc := http.NewResponseController(w)

	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	return &sseWriter{w: w, flusher: flusher, rc: rc}, nil
}

// writeEvent writes one SSE event and flushes immediately. Consumers must
// observe events with bounded latency, so nothing is buffered across events.
func (s *sseWriter) writeEvent(eventType string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	// SSE framing: event type line, data line, blank line.
	_, err = fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", eventType, jsonData)
	if err != nil {
		return err
	}

	if flushErr := s.rc.Flush(); flushErr != nil {
		// Fallback to the traditional flusher
		s.flusher.Flush()
	}

	return nil
}

// session owns one open streaming connection from bootstrap to disconnect.
type session struct {
	id    string
	sse   *sseWriter
	queue *event.Queue
	cfg   *appconfig.Config

	// heartbeat cadence: one heartbeat per ticks * tick
	ticks int
	tick  time.Duration

	lastHeartbeat time.Time
	log           zerolog.Logger
}

// streamEvents upgrades the connection to an SSE session and runs it until
// the peer disconnects or the server shuts down.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	sse, err := newSSEWriter(w)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Status:  event.StatusError,
			Message: err.Error(),
		})
		return
	}

	// Flush headers before the first event so the client sees the stream
	// open immediately.
	w.WriteHeader(http.StatusOK)
	sse.flusher.Flush()

	id := ulid.Make().String()
	sess := &session{
		id:    id,
		sse:   sse,
		queue: s.queue,
		cfg:   s.appConfig,
		ticks: s.config.HeartbeatTicks,
		tick:  s.config.TickInterval,
		log:   logging.With().Str("sessionID", id).Logger(),
	}

	sess.run(r.Context(), s.shutdownCh)
}

// run drives the session state machine: bootstrap, then the streaming loop,
// until a terminal close. The session never closes itself; only a failed
// write, a peer disconnect, or server shutdown ends it.
func (s *session) run(ctx context.Context, shutdown <-chan struct{}) {
	s.log.Info().Msg("client connected for SSE stream")

	// Bootstrap sequence, fixed order: connected, tools, capabilities.
	if err := s.sse.writeEvent("connected", map[string]any{
		"status":  "connected",
		"message": "LightRAG MCP Server Connected",
	}); err != nil {
		s.close(err)
		return
	}
	if err := s.sse.writeEvent("tools", map[string]any{
		"type":  "tools",
		"tools": tool.Catalog(),
	}); err != nil {
		s.close(err)
		return
	}
	if err := s.sse.writeEvent("capabilities", action.Capabilities(s.cfg)); err != nil {
		s.close(err)
		return
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	elapsed := 0
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("client disconnected from SSE stream")
			return
		case <-shutdown:
			s.log.Info().Msg("server shutting down, draining SSE stream")
			return
		case <-ticker.C:
			// Drain opportunistically: at most one queued event per tick,
			// and an empty queue never stalls the session.
			if e, ok := s.queue.TryConsume(); ok {
				if err := s.sse.writeEvent("message", e); err != nil {
					s.close(err)
					return
				}
			}

			elapsed++
			if elapsed >= s.ticks {
				s.lastHeartbeat = time.Now()
				hb := map[string]any{
					"type":      "heartbeat",
					"timestamp": float64(s.lastHeartbeat.UnixNano()) / float64(time.Second),
				}
				if err := s.sse.writeEvent("heartbeat", hb); err != nil {
					s.close(err)
					return
				}
				elapsed = 0
			}
		}
	}
}

// close records a terminal transition caused by a failed transport write.
// Disconnects are normal lifecycle, not errors.
func (s *session) close(err error) {
	s.log.Info().Err(err).Msg("client disconnected from SSE stream")
}
