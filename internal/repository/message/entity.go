package message

import (
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/internal/types"
)

// MessageEntity is the persisted form of a chat message. Append-only: rows
// are never updated or deleted.
type MessageEntity struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36);not null" json:"id"`
	RoomID    string    `gorm:"column:room_id;type:varchar(64);index;not null" json:"chat_id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Text      string    `gorm:"column:original_text;type:text;not null" json:"original_text"`
	SrcLang   string    `gorm:"column:src_lang;type:varchar(16);not null" json:"src_lang"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (MessageEntity) TableName() string { return "messages" }

func (me *MessageEntity) ToDomain() types.Message {
	return types.Message{
		ID:        me.ID,
		RoomID:    me.RoomID,
		UserID:    me.UserID,
		Text:      me.Text,
		SrcLang:   lang.Code(me.SrcLang),
		CreatedAt: me.CreatedAt,
	}
}

func (me *MessageEntity) FromDomain(m types.Message) {
	me.ID = m.ID
	me.RoomID = m.RoomID
	me.UserID = m.UserID
	me.Text = m.Text
	me.SrcLang = string(m.SrcLang)
	me.CreatedAt = m.CreatedAt
}
