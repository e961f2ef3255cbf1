package action

import (
	"context"
	"fmt"

	"github.com/vaebz/lightrag-mcp/internal/event"
	"github.com/vaebz/lightrag-mcp/internal/logging"
	"github.com/vaebz/lightrag-mcp/internal/tool"
)

// stringField extracts a string field from the request data mapping.
func stringField(req Request, key string) string {
	v, _ := req.Data[key].(string)
	return v
}

// handleQuery answers a natural-language question by delegating a
// context-augmented prompt to the generation backend. A backend failure is a
// degraded success: the caller still gets a well-formed body, with the error
// carried in the status field.
func (d *Dispatcher) handleQuery(ctx context.Context, req Request) event.Event {
	query := stringField(req, "query")
	if query == "" {
		return event.Err("No query provided", nil)
	}

	response, err := d.gateway.Generate(ctx, buildPrompt(query))
	if err != nil {
		logging.Error().Err(err).Msg("generation backend call failed")
		return event.Err("Failed to process query", map[string]any{
			"response": fmt.Sprintf("I'm unable to answer your question about '%s' at this time. Please try again later.", query),
			"sources":  []any{},
		})
	}

	return event.OK("Query processed", map[string]any{
		"response": response,
		"sources": []map[string]any{
			{
				"title":      "VAEBZ Knowledge Base",
				"snippet":    "Information about VAEBZ and TaskHarbinger",
				"confidence": 0.95,
			},
		},
	})
}

// handleEmbedding embeds the given text and reports the vector's
// dimensionality rather than the vector itself.
func (d *Dispatcher) handleEmbedding(ctx context.Context, req Request) event.Event {
	text := stringField(req, "text")
	if text == "" {
		return event.Err("No text provided for embedding", nil)
	}

	vec, err := d.gateway.Embed(ctx, text)
	if err != nil {
		logging.Error().Err(err).Msg("embedding backend call failed")
		return event.Err("Embedding service unavailable", map[string]any{
			"dimensions": 0,
			"model":      d.cfg.EmbeddingModel,
			"status":     "failed",
		})
	}

	return event.OK("Embedding processed", map[string]any{
		"dimensions": len(vec),
		"model":      d.cfg.EmbeddingModel,
		"status":     "success",
	})
}

func (d *Dispatcher) handleGetTools(ctx context.Context, req Request) event.Event {
	return event.OK("Tools retrieved", map[string]any{
		"tools": tool.Catalog(),
	})
}

func (d *Dispatcher) handleCapabilities(ctx context.Context, req Request) event.Event {
	return Capabilities(d.cfg)
}
