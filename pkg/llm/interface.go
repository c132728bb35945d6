// Package llm abstracts the generative text providers used for prompt-based
// fallback translation, style rewriting and cultural commentary.
package llm

import (
	"context"
	"time"
)

// Client completes a single prompt into text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider names accepted by the factory.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Provider string
	APIKey   string
	// OllamaURL is only used by the ollama provider.
	OllamaURL string
	Model     string
	Timeout   time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}
