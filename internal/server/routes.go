package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all routes. Any GET advertising a streaming accept
// type is handed to an SSE session; /health is the one exception and always
// answers synchronously.
func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/health", s.health)

	r.Get("/capabilities", s.streamOr(s.capabilitiesSnapshot))
	r.Get("/tools", s.streamOr(s.toolsSnapshot))
	r.Get("/", s.streamOr(s.banner))
	r.Get("/*", s.streamOr(s.banner))

	// Synchronous actions, routed by the body's action field.
	r.Post("/", s.handleAction)
	r.Post("/*", s.handleAction)
}

// streamOr dispatches to an SSE session when the client asks for
// text/event-stream, and to the plain handler otherwise.
func (s *Server) streamOr(plain http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
			s.streamEvents(w, r)
			return
		}
		plain(w, r)
	}
}
