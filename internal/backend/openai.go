package backend

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vaebz/lightrag-mcp/internal/logging"
)

// openaiBinding serves generation and embedding through any OpenAI-compatible
// endpoint using the official SDK.
type openaiBinding struct {
	client openai.Client
	model  string
}

func newOpenAIBinding(host, apiKey, model string) *openaiBinding {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if host != "" {
		opts = append(opts, option.WithBaseURL(host))
	}

	logging.Info().Str("host", host).Str("model", model).Msg("openai binding initialized")

	return &openaiBinding{client: openai.NewClient(opts...), model: model}
}

func (b *openaiBinding) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion: empty choice list")
	}

	return resp.Choices[0].Message.Content, nil
}

func (b *openaiBinding) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, EmbedTimeout)
	defer cancel()

	resp, err := b.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(b.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings: empty data list")
	}

	return resp.Data[0].Embedding, nil
}
