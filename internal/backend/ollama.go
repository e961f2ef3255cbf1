package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/vaebz/lightrag-mcp/internal/logging"
)

// ollamaBinding serves generation and embedding through the official Ollama
// API client.
type ollamaBinding struct {
	client *api.Client
	model  string
}

func newOllamaBinding(host, model string) (*ollamaBinding, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	// No client-level timeout; each call carries its own deadline.
	client := api.NewClient(u, &http.Client{})

	logging.Info().Str("host", host).Str("model", model).Msg("ollama binding initialized")

	return &ollamaBinding{client: client, model: model}, nil
}

func (o *ollamaBinding) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var out strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	return out.String(), nil
}

func (o *ollamaBinding) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, EmbedTimeout)
	defer cancel()

	resp, err := o.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  o.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embeddings: %w", err)
	}

	return resp.Embedding, nil
}
