package websocket

import (
	"time"

	"github.com/xpanvictor/linguabridge/internal/domains/translation"
)

// InitFrame is the first client frame on a chat socket.
type InitFrame struct {
	UserID  string `json:"user_id,omitempty"`
	TgtLang string `json:"tgt_lang,omitempty"`
}

// ChatFrame is an inbound chat message.
type ChatFrame struct {
	Text    string `json:"text"`
	SrcLang string `json:"src_lang,omitempty"`
}

// OutboundMessage is the per-recipient payload pushed for each inbound
// message; TranslatedText is in the recipient's target language.
type OutboundMessage struct {
	ID             string               `json:"id"`
	ChatID         string               `json:"chat_id"`
	FromUser       string               `json:"from_user"`
	OriginalText   string               `json:"original_text"`
	TranslatedText string               `json:"translated_text"`
	SrcLang        string               `json:"src_lang"`
	TgtLang        string               `json:"tgt_lang"`
	CreatedAt      time.Time            `json:"created_at"`
	Emotion        *translation.Emotion `json:"emotion,omitempty"`
}

// NoticeFrame announces membership changes to a room.
type NoticeFrame struct {
	Event  string `json:"event"` // "joined" or "left"
	UserID string `json:"user_id"`
	ChatID string `json:"chat_id"`
}

// ErrorFrame reports a protocol error to the client.
type ErrorFrame struct {
	Error string `json:"error"`
}
