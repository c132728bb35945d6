package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/linguabridge/internal/lang"
)

// Message is one persisted chat message. Immutable once created.
type Message struct {
	ID        uuid.UUID `json:"id"`
	RoomID    string    `json:"chat_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"original_text"`
	SrcLang   lang.Code `json:"src_lang"`
	CreatedAt time.Time `json:"created_at"`
}
