package llm

import (
	"fmt"

	"github.com/xpanvictor/linguabridge/pkg/Logger"
)

// New builds the configured provider.
func New(cfg Config, logger *Logger.Logger) (Client, error) {
	var (
		client Client
		err    error
	)
	switch cfg.Provider {
	case ProviderGemini:
		client, err = NewGemini(cfg)
	case ProviderOpenAI:
		client, err = NewOpenAI(cfg)
	case ProviderOllama:
		client, err = NewOllama(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	logger.Infof("llm provider %s ready (model=%s)", cfg.Provider, cfg.Model)
	return client, nil
}
