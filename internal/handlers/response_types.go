package handlers

import (
	"time"

	"github.com/xpanvictor/linguabridge/internal/domains/translation"
)

// Response wrapper types for Swagger documentation

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty"`
}

// InvalidStyleResponse carries the allowed style set alongside the error
type InvalidStyleResponse struct {
	Error         string   `json:"error" example:"Invalid style"`
	AllowedStyles []string `json:"allowed_styles"`
}

// TranslateResponse is the result of the base translate endpoint
type TranslateResponse struct {
	TranslatedText string               `json:"translated_text"`
	Degraded       bool                 `json:"degraded,omitempty"`
	Emotion        *translation.Emotion `json:"emotion,omitempty"`
	AudioFile      *string              `json:"audio_file,omitempty"`
}

// RewriteResponse is the result of the style rewrite endpoint
type RewriteResponse struct {
	Rewritten string `json:"rewritten"`
}

// FeedbackResponse is the result of the cultural feedback endpoint
type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// TranscriptionResponse is the result of the audio transcription endpoint
type TranscriptionResponse struct {
	Text    string `json:"text"`
	SrcLang string `json:"src_lang"`
}

// HistoryMessage is one persisted message in a room's history
type HistoryMessage struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	OriginalText string    `json:"original_text"`
	SrcLang      string    `json:"src_lang"`
	CreatedAt    time.Time `json:"created_at"`
}
