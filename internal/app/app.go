package app

import (
	"github.com/go-redis/redis"
	"github.com/xpanvictor/linguabridge/internal/config"
	"github.com/xpanvictor/linguabridge/internal/domains/chat"
	"github.com/xpanvictor/linguabridge/internal/domains/translation"
	"github.com/xpanvictor/linguabridge/internal/repository/message"
	"github.com/xpanvictor/linguabridge/internal/server"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"github.com/xpanvictor/linguabridge/pkg/emotion"
	"github.com/xpanvictor/linguabridge/pkg/io/audiostore"
	"github.com/xpanvictor/linguabridge/pkg/io/stt"
	"github.com/xpanvictor/linguabridge/pkg/io/tts/gtts"
	"github.com/xpanvictor/linguabridge/pkg/llm"
	"github.com/xpanvictor/linguabridge/pkg/nllb"
	"gorm.io/gorm"
)

// App wires all dependencies together.
type App struct {
	Config *config.Settings
	Logger *Logger.Logger
	DB     *gorm.DB
	RC     *redis.Client

	ServerDeps server.Dependencies
}

// NewApp creates the application with all dependencies wired.
func NewApp(cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}
	if err := a.setupDependencies(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) setupDependencies() error {
	cfg := a.Config

	llmClient, err := llm.New(llm.Config{
		Provider:  cfg.LLM.Provider,
		APIKey:    a.providerKey(),
		OllamaURL: cfg.LLM.OllamaURL,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.LLM.Timeout(),
	}, a.Logger)
	if err != nil {
		return err
	}

	translator := nllb.NewTranslator(nllb.Config{
		BaseURL: cfg.Translator.APIURL,
		Token:   cfg.Translator.APIToken,
		Timeout: cfg.Translator.Timeout(),
	})

	classifier := emotion.New(emotion.Config{
		BaseURL: cfg.Emotion.APIURL,
		Token:   cfg.Emotion.APIToken,
		Model:   cfg.Emotion.Model,
	})

	audioStore, err := audiostore.New(cfg.Audio.Dir)
	if err != nil {
		return err
	}

	defaultTier, err := nllb.ParseTier(cfg.Translator.DefaultTier, nllb.TierSmall)
	if err != nil {
		return err
	}

	translationSvc := translation.New(
		translator,
		llmClient,
		classifier,
		gtts.New(cfg.TTS.BaseURL),
		audioStore,
		defaultTier,
		a.Logger,
	)

	msgRepo := message.NewGormMessageRepo(a.DB, a.RC, cfg.Chat.HistoryLimit, a.Logger)
	chatSvc := chat.New(msgRepo, cfg.Chat.HistoryLimit, a.Logger)

	a.ServerDeps = server.Dependencies{
		ChatService:        chatSvc,
		Registry:           chat.NewRegistry(a.Logger),
		TranslationService: translationSvc,
		AudioStore:         audioStore,
		Recognizer:         stt.New(stt.Config{BaseURL: cfg.STT.BaseURL}),
		Logger:             a.Logger,
		Configs:            cfg,
	}
	return nil
}

func (a *App) providerKey() string {
	switch a.Config.LLM.Provider {
	case llm.ProviderOpenAI:
		return a.Config.LLM.OpenAIAPIKey
	default:
		return a.Config.LLM.GeminiAPIKey
	}
}

// GetServerDependencies returns the wired server dependencies.
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}
