package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
)

const defaultOllamaModel = "llama3.1:8b-instruct"

type ollamaClient struct {
	farm  *ollamafarm.Farm
	model string
	cfg   Config
}

// NewOllama creates a client backed by one or more ollama servers managed
// through a farm, picking the first online server per call.
func NewOllama(cfg Config) (Client, error) {
	if cfg.OllamaURL == "" {
		return nil, fmt.Errorf("ollama URL is not configured")
	}
	farm := ollamafarm.New()
	if err := farm.RegisterURL(cfg.OllamaURL, nil); err != nil {
		return nil, fmt.Errorf("registering ollama server: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	return &ollamaClient{farm: farm, model: model, cfg: cfg}, nil
}

func (o *ollamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	srv := o.farm.First(&ollamafarm.Where{Offline: false})
	if srv == nil {
		return "", fmt.Errorf("no ollama server online")
	}

	ctx2, cancel := context.WithTimeout(ctx, o.cfg.timeout())
	defer cancel()

	stream := false
	var sb strings.Builder
	err := srv.Client().Generate(ctx2, &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("ollama returned empty text")
	}
	return out, nil
}
