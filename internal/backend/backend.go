// Package backend provides the outbound gateway to the generation and
// embedding services.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/vaebz/lightrag-mcp/internal/config"
	"github.com/vaebz/lightrag-mcp/internal/logging"
)

// Call budgets. A single failed or timed-out attempt is terminal for that
// request; there is no retry.
const (
	GenerateTimeout = 60 * time.Second
	EmbedTimeout    = 30 * time.Second
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder produces an embedding vector for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Gateway is the outbound collaborator invoked by action handlers. Failures
// are returned as ordinary errors; the dispatcher converts them to degraded
// structured results, never transport faults.
type Gateway interface {
	Generator
	Embedder
}

type gateway struct {
	gen Generator
	emb Embedder
}

func (g *gateway) Generate(ctx context.Context, prompt string) (string, error) {
	return g.gen.Generate(ctx, prompt)
}

func (g *gateway) Embed(ctx context.Context, text string) ([]float64, error) {
	return g.emb.Embed(ctx, text)
}

// New builds a gateway from configuration. The generation and embedding
// bindings are selected independently. A binding name with no implementation
// yields a gateway half whose calls always fail, which callers surface as
// degraded results.
func New(cfg *config.Config) Gateway {
	g := &gateway{
		gen: unsupported{binding: cfg.LLMBinding},
		emb: unsupported{binding: cfg.EmbeddingBinding},
	}

	switch cfg.LLMBinding {
	case "ollama":
		if b, err := newOllamaBinding(cfg.LLMHost, cfg.LLMModel); err != nil {
			logging.Error().Err(err).Str("host", cfg.LLMHost).Msg("ollama generation binding unavailable")
		} else {
			g.gen = b
		}
	case "openai":
		g.gen = newOpenAIBinding(cfg.LLMHost, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		logging.Warn().Str("binding", cfg.LLMBinding).Msg("unsupported LLM binding, generation calls will fail")
	}

	switch cfg.EmbeddingBinding {
	case "ollama":
		if b, err := newOllamaBinding(cfg.EmbeddingHost, cfg.EmbeddingModel); err != nil {
			logging.Error().Err(err).Str("host", cfg.EmbeddingHost).Msg("ollama embedding binding unavailable")
		} else {
			g.emb = b
		}
	case "openai":
		g.emb = newOpenAIBinding(cfg.EmbeddingHost, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
	default:
		logging.Warn().Str("binding", cfg.EmbeddingBinding).Msg("unsupported embedding binding, embedding calls will fail")
	}

	return g
}

// unsupported stands in for binding names with no implementation.
type unsupported struct {
	binding string
}

func (u unsupported) Generate(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("llm binding %q is not supported", u.binding)
}

func (u unsupported) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, fmt.Errorf("embedding binding %q is not supported", u.binding)
}
