package websocket

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/xpanvictor/linguabridge/internal/domains/chat"
	"github.com/xpanvictor/linguabridge/internal/domains/translation"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Gateway drives chat sessions: handshake, init, message loop, fan-out.
type Gateway struct {
	registry       *chat.Registry
	chatSvc        *chat.Service
	translator     *translation.Service
	defaultTgt     lang.Code
	emotionEnabled bool
	logger         *Logger.Logger
}

func NewGateway(
	registry *chat.Registry,
	chatSvc *chat.Service,
	translator *translation.Service,
	defaultTgt lang.Code,
	emotionEnabled bool,
	logger *Logger.Logger,
) *Gateway {
	if defaultTgt == "" {
		defaultTgt = lang.English
	}
	return &Gateway{
		registry:       registry,
		chatSvc:        chatSvc,
		translator:     translator,
		defaultTgt:     defaultTgt,
		emotionEnabled: emotionEnabled,
		logger:         logger,
	}
}

// HandleChat upgrades the connection and runs the session to completion.
func (g *Gateway) HandleChat(c *gin.Context) {
	chatID := c.Param("chatId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Errorf("ws upgrade failed: %v", err)
		return
	}

	session := NewSession(conn, g.logger)
	defer session.Close()

	if err := session.Accept(); err != nil {
		g.logger.Errorf("session %s accept: %v", session.ID(), err)
		return
	}

	var init InitFrame
	if err := conn.ReadJSON(&init); err != nil {
		g.logger.Infof("session %s closed before init: %v", session.ID(), err)
		return
	}

	userID := init.UserID
	if userID == "" {
		userID = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	tgt := lang.Code(init.TgtLang)
	if tgt == "" {
		tgt = g.defaultTgt
	}
	if err := lang.Validate(tgt); err != nil {
		session.SendError(err.Error())
		return
	}

	if err := session.Init(userID, tgt); err != nil {
		g.logger.Errorf("session %s init: %v", session.ID(), err)
		return
	}

	g.registry.Join(chatID, session)
	connID := session.ID()
	defer func() {
		// Idempotent: also reached after error paths that already left.
		g.registry.Leave(chatID, connID)
		g.registry.Broadcast(chatID, NoticeFrame{Event: "left", UserID: userID, ChatID: chatID}, nil)
	}()
	g.registry.Broadcast(chatID, NoticeFrame{Event: "joined", UserID: userID, ChatID: chatID}, &connID)

	for {
		var frame ChatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			g.logger.Infof("session %s disconnected: %v", session.ID(), err)
			return
		}
		g.handleInbound(chatID, session, frame)
	}
}

// handleInbound persists one message and fans it out translated per
// recipient. A single recipient's translation or delivery failure never
// aborts delivery to the rest.
func (g *Gateway) handleInbound(chatID string, sender *Session, frame ChatFrame) {
	ctx := context.Background()

	msg, err := g.chatSvc.PostMessage(ctx, chatID, sender.UserID(), frame.Text, lang.Code(frame.SrcLang))
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return
		}
		g.logger.Errorf("persisting message in room %s: %v", chatID, err)
		return
	}

	var emo *translation.Emotion
	if g.emotionEnabled {
		emo = g.translator.DetectEmotion(ctx, msg.Text, msg.SrcLang)
	}

	for _, member := range g.registry.MembersOf(chatID) {
		res, err := g.translator.Translate(ctx, msg.Text, msg.SrcLang, member.TargetLang(), g.translator.DefaultTier())
		if err != nil {
			// Whole-call errors (e.g. an unrecognized detected source)
			// follow the same policy as translation failures: deliver
			// the original text rather than dropping the message.
			g.logger.Warnf("translate for %s in room %s: %v", member.ID(), chatID, err)
			res = translation.Result{Text: msg.Text, Degraded: true}
		}

		payload := OutboundMessage{
			ID:             msg.ID.String(),
			ChatID:         chatID,
			FromUser:       msg.UserID,
			OriginalText:   msg.Text,
			TranslatedText: res.Text,
			SrcLang:        string(msg.SrcLang),
			TgtLang:        string(member.TargetLang()),
			CreatedAt:      msg.CreatedAt,
			Emotion:        emo,
		}
		if err := member.Deliver(payload); err != nil {
			g.logger.Warnf("deliver to %s in room %s: %v", member.ID(), chatID, err)
		}
	}
}
