package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/linguabridge/internal/domains/chat"
	"github.com/xpanvictor/linguabridge/internal/domains/translation"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/internal/types"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"github.com/xpanvictor/linguabridge/pkg/emotion"
	"github.com/xpanvictor/linguabridge/pkg/nllb"
)

type memberFake struct {
	id       uuid.UUID
	userID   string
	tgt      lang.Code
	payloads []OutboundMessage
}

func newMemberFake(userID string, tgt lang.Code) *memberFake {
	return &memberFake{id: uuid.New(), userID: userID, tgt: tgt}
}

func (m *memberFake) ID() uuid.UUID         { return m.id }
func (m *memberFake) UserID() string        { return m.userID }
func (m *memberFake) TargetLang() lang.Code { return m.tgt }

func (m *memberFake) Deliver(payload any) error {
	out, ok := payload.(OutboundMessage)
	if !ok {
		return nil
	}
	m.payloads = append(m.payloads, out)
	return nil
}

type memRepo struct {
	msgs []types.Message
}

func (r *memRepo) CreateMessage(_ context.Context, msg types.Message) (*types.Message, error) {
	r.msgs = append(r.msgs, msg)
	return &msg, nil
}

func (r *memRepo) ListRoomMessages(_ context.Context, _ string, _ int) ([]types.Message, error) {
	return r.msgs, nil
}

type mtFake struct{ err error }

func (m mtFake) Translate(_ context.Context, text string, _, tgt lang.Code, _ nllb.ModelTier) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "[" + string(tgt) + "] " + text, nil
}

type llmFake struct{}

func (llmFake) Complete(_ context.Context, _ string) (string, error) { return "generated", nil }

type classifierFake struct{}

func (classifierFake) Classify(_ context.Context, _ string) (emotion.Prediction, error) {
	return emotion.Prediction{Label: "JOY", Score: 0.8}, nil
}

type noTTS struct{}

func (noTTS) Synthesize(_ context.Context, _, _ string) ([]byte, error) {
	return nil, errors.New("tts disabled")
}

type noSink struct{}

func (noSink) Save(_ []byte) (string, error) { return "", errors.New("no sink") }

func newGatewayFixture(mtErr error, emotionEnabled bool) (*Gateway, *chat.Registry, *memRepo) {
	logger := Logger.New(true)
	repo := &memRepo{}
	translator := translation.New(mtFake{err: mtErr}, llmFake{}, classifierFake{}, noTTS{}, noSink{}, nllb.TierSmall, logger)
	registry := chat.NewRegistry(logger)
	gw := NewGateway(registry, chat.New(repo, 20, logger), translator, lang.English, emotionEnabled, logger)
	return gw, registry, repo
}

func joinedSender(t *testing.T, userID string, tgt lang.Code) *Session {
	t.Helper()
	s := NewSession(nil, Logger.New(true))
	require.NoError(t, s.Accept())
	require.NoError(t, s.Init(userID, tgt))
	return s
}

func TestHandleInbound_FansOutPerRecipientLanguage(t *testing.T) {
	req := require.New(t)
	gw, registry, repo := newGatewayFixture(nil, false)

	sender := joinedSender(t, "alice", "fra_Latn")
	bob := newMemberFake("bob", "eng_Latn")
	carol := newMemberFake("carol", "spa_Latn")
	registry.Join("r1", sender)
	registry.Join("r1", bob)
	registry.Join("r1", carol)

	gw.handleInbound("r1", sender, ChatFrame{Text: "Bonjour", SrcLang: "fra_Latn"})

	req.Len(repo.msgs, 1)
	req.Equal("Bonjour", repo.msgs[0].Text)

	req.Len(bob.payloads, 1)
	req.Equal("Bonjour", bob.payloads[0].OriginalText)
	req.Equal("fra_Latn", bob.payloads[0].SrcLang)
	req.Equal("eng_Latn", bob.payloads[0].TgtLang)
	req.Equal("[eng_Latn] Bonjour", bob.payloads[0].TranslatedText)
	req.Equal("alice", bob.payloads[0].FromUser)

	req.Len(carol.payloads, 1)
	req.Equal("[spa_Latn] Bonjour", carol.payloads[0].TranslatedText)
}

func TestHandleInbound_TranslationFailureDeliversOriginal(t *testing.T) {
	req := require.New(t)
	gw, registry, repo := newGatewayFixture(errors.New("model offline"), false)

	sender := joinedSender(t, "alice", "fra_Latn")
	bob := newMemberFake("bob", "eng_Latn")
	registry.Join("r1", sender)
	registry.Join("r1", bob)

	gw.handleInbound("r1", sender, ChatFrame{Text: "Bonjour", SrcLang: "fra_Latn"})

	req.Len(repo.msgs, 1, "the message is still persisted")
	req.Len(bob.payloads, 1, "a degraded payload is still delivered")
	req.Equal("Bonjour", bob.payloads[0].TranslatedText)
	req.Equal("Bonjour", bob.payloads[0].OriginalText)
}

func TestHandleInbound_EmptyTextIgnored(t *testing.T) {
	req := require.New(t)
	gw, registry, repo := newGatewayFixture(nil, false)

	sender := joinedSender(t, "alice", "fra_Latn")
	bob := newMemberFake("bob", "eng_Latn")
	registry.Join("r1", sender)
	registry.Join("r1", bob)

	gw.handleInbound("r1", sender, ChatFrame{Text: "   ", SrcLang: "fra_Latn"})

	req.Empty(repo.msgs)
	req.Empty(bob.payloads)
}

func TestHandleInbound_EmotionAttachedOncePerMessage(t *testing.T) {
	req := require.New(t)
	gw, registry, _ := newGatewayFixture(nil, true)

	sender := joinedSender(t, "alice", "eng_Latn")
	bob := newMemberFake("bob", "fra_Latn")
	carol := newMemberFake("carol", "spa_Latn")
	registry.Join("r1", sender)
	registry.Join("r1", bob)
	registry.Join("r1", carol)

	gw.handleInbound("r1", sender, ChatFrame{Text: "great news", SrcLang: "eng_Latn"})

	req.NotNil(bob.payloads[0].Emotion)
	req.Equal("joy", bob.payloads[0].Emotion.Label)
	req.Equal(bob.payloads[0].Emotion, carol.payloads[0].Emotion, "one classification shared by all recipients")
}
