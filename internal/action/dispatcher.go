// Package action routes synchronous requests to handlers and publishes every
// result to the shared event queue.
package action

import (
	"context"
	"fmt"

	"github.com/vaebz/lightrag-mcp/internal/backend"
	"github.com/vaebz/lightrag-mcp/internal/config"
	"github.com/vaebz/lightrag-mcp/internal/event"
	"github.com/vaebz/lightrag-mcp/internal/logging"
	"github.com/vaebz/lightrag-mcp/internal/tool"
)

// Request is the parsed synchronous input. Action routes the request; an
// absent or unknown action is a valid default case, never an error.
type Request struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// HandlerFunc handles one named action.
type HandlerFunc func(ctx context.Context, req Request) event.Event

// Dispatcher routes requests by action name through a handler registry.
type Dispatcher struct {
	cfg      *config.Config
	queue    *event.Queue
	gateway  backend.Gateway
	handlers map[string]HandlerFunc
}

// NewDispatcher creates a dispatcher with the built-in handlers registered.
func NewDispatcher(cfg *config.Config, queue *event.Queue, gw backend.Gateway) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		queue:    queue,
		gateway:  gw,
		handlers: make(map[string]HandlerFunc),
	}

	d.Register("query", d.handleQuery)
	d.Register("embedding", d.handleEmbedding)
	d.Register("get_tools", d.handleGetTools)
	d.Register("capabilities", d.handleCapabilities)

	return d
}

// Register installs a handler for an action name, replacing any previous one.
func (d *Dispatcher) Register(name string, fn HandlerFunc) {
	d.handlers[name] = fn
}

// Dispatch routes the request and returns the structured result. The result
// is also published to the event queue, unconditionally, as the last step:
// this is how synchronous traffic becomes visible to streaming observers.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) event.Event {
	var result event.Event

	if h, ok := d.handlers[req.Action]; ok {
		result = h(ctx, req)
	} else if req.Action == "" {
		result = ackEvent("No action specified")
	} else {
		// Unknown actions are acknowledged, never rejected.
		result = ackEvent(fmt.Sprintf("Action '%s' acknowledged", req.Action))
	}

	logging.Info().
		Str("action", req.Action).
		Str("status", result.Status).
		Msg("action dispatched")

	d.queue.Publish(result)
	return result
}

// Acknowledge builds and publishes an acknowledgment result outside the
// normal routing path, for requests that never reach a handler (e.g. an
// empty body).
func (d *Dispatcher) Acknowledge(message string) event.Event {
	result := ackEvent(message)
	d.queue.Publish(result)
	return result
}

// Capabilities returns the capability snapshot for the given configuration.
// Shared by the capabilities action and the SSE bootstrap sequence.
func Capabilities(cfg *config.Config) event.Event {
	return event.OK("Capabilities retrieved", map[string]any{
		"capabilities": []string{"rag", "embedding", "query"},
		"models": map[string]string{
			"llm":       cfg.LLMModel,
			"embedding": cfg.EmbeddingModel,
		},
		"api_version": apiVersion,
		"tools":       tool.Catalog(),
	})
}

func ackEvent(message string) event.Event {
	return event.OK(message, map[string]any{
		"capabilities": []string{"rag", "embedding", "query"},
		"api_version":  apiVersion,
	})
}

const apiVersion = "1.0"
