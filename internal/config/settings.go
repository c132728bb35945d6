package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
}

type LLMConfig struct {
	Provider     string `mapstructure:"provider"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OllamaURL    string `mapstructure:"ollama_url"`
	Model        string `mapstructure:"model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

func (l LLMConfig) Timeout() time.Duration {
	if l.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(l.TimeoutSecs) * time.Second
}

type TranslatorConfig struct {
	APIURL      string `mapstructure:"api_url"`
	APIToken    string `mapstructure:"api_token"`
	DefaultTier string `mapstructure:"default_tier"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

func (t TranslatorConfig) Timeout() time.Duration {
	if t.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.TimeoutSecs) * time.Second
}

type EmotionConfig struct {
	APIURL   string `mapstructure:"api_url"`
	APIToken string `mapstructure:"api_token"`
	Model    string `mapstructure:"model"`
}

type TTSConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type STTConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type AudioConfig struct {
	Dir string `mapstructure:"dir"`
}

type ChatConfig struct {
	HistoryLimit      int    `mapstructure:"history_limit"`
	DefaultTargetLang string `mapstructure:"default_target_lang"`
	EmotionEnabled    bool   `mapstructure:"emotion_enabled"`
}

type Settings struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Emotion    EmotionConfig    `mapstructure:"emotion"`
	TTS        TTSConfig        `mapstructure:"tts"`
	STT        STTConfig        `mapstructure:"stt"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Env        string           `mapstructure:"env"`
	Debug      bool             `mapstructure:"debug"`
}

func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	settings.applyDefaults()

	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = 8080
	}
	if s.Chat.HistoryLimit == 0 {
		s.Chat.HistoryLimit = 20
	}
	if s.Chat.DefaultTargetLang == "" {
		s.Chat.DefaultTargetLang = "eng_Latn"
	}
	if s.Translator.DefaultTier == "" {
		s.Translator.DefaultTier = "small"
	}
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
