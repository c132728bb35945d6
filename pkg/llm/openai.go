package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIClient struct {
	client openai.Client
	model  openai.ChatModel
	cfg    Config
}

// NewOpenAI creates an OpenAI-backed client.
func NewOpenAI(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is not configured")
	}
	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &openAIClient{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
		cfg:    cfg,
	}, nil
}

func (o *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx2, cancel := context.WithTimeout(ctx, o.cfg.timeout())
	defer cancel()

	completion, err := o.client.Chat.Completions.New(ctx2, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: o.model,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	out := strings.TrimSpace(completion.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai returned empty text")
	}
	return out, nil
}
