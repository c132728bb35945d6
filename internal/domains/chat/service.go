package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/internal/types"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
)

// ErrEmptyMessage signals text that is empty after trimming. Callers ignore
// the message; nothing is persisted or broadcast.
var ErrEmptyMessage = errors.New("empty message text")

// MessageRepository is the persistence collaborator: an append-only message
// log with ordered read-back.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg types.Message) (*types.Message, error)
	ListRoomMessages(ctx context.Context, roomID string, limit int) ([]types.Message, error)
}

type Service struct {
	repo         MessageRepository
	historyLimit int
	logger       *Logger.Logger
}

func New(repo MessageRepository, historyLimit int, logger *Logger.Logger) *Service {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &Service{repo: repo, historyLimit: historyLimit, logger: logger}
}

// PostMessage validates, detects the source language when absent, and
// persists one message.
func (s *Service) PostMessage(ctx context.Context, roomID, userID, text string, src lang.Code) (*types.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if src == "" {
		src = lang.Detect(text)
	}

	msg := types.Message{
		ID:        uuid.New(),
		RoomID:    roomID,
		UserID:    userID,
		Text:      text,
		SrcLang:   src,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.CreateMessage(ctx, msg)
}

// History returns the room's most recent messages, oldest first, capped at
// the configured limit.
func (s *Service) History(ctx context.Context, roomID string) ([]types.Message, error) {
	return s.repo.ListRoomMessages(ctx, roomID, s.historyLimit)
}
