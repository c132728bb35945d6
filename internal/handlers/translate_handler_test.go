package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

type stubMT struct{ err error }

func (s stubMT) Translate(_ context.Context, text string, _, _ lang.Code, _ nllb.ModelTier) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "translated:" + text, nil
}

type stubLLM struct{}

func (stubLLM) Complete(_ context.Context, _ string) (string, error) { return "rewritten", nil }

type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, _ string) (emotion.Prediction, error) {
	return emotion.Prediction{Label: "joy", Score: 0.9}, nil
}

type stubTTS struct{}

func (stubTTS) Synthesize(_ context.Context, _, _ string) ([]byte, error) {
	return []byte("mp3"), nil
}

type stubSink struct{}

func (stubSink) Save(_ []byte) (string, error) { return "deadbeef.mp3", nil }

func newTestRouter(t *testing.T, mtErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := Logger.New(true)
	svc := translation.New(stubMT{err: mtErr}, stubLLM{}, stubClassifier{}, stubTTS{}, stubSink{}, nllb.TierSmall, logger)

	r := gin.New()
	NewTranslateHandler(svc, logger).RegisterTranslateRoutes(r.Group("/"))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRewriteStyle_InvalidStyleReturnsAllowedSet(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, nil)

	for _, style := range []string{"angry", "shouty", "x"} {
		w := postJSON(t, r, "/rewrite-style", RewriteRequest{
			Text: "hello", SrcLang: "eng_Latn", TgtLang: "fra_Latn", Style: style,
		})
		req.Equal(http.StatusBadRequest, w.Code, "style %q", style)

		var resp InvalidStyleResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.Equal(translation.Styles, resp.AllowedStyles)
	}
}

func TestRewriteStyle_OK(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, nil)

	w := postJSON(t, r, "/rewrite-style", RewriteRequest{
		Text: "hello", SrcLang: "eng_Latn", TgtLang: "fra_Latn", Style: "polite",
	})
	req.Equal(http.StatusOK, w.Code)

	var resp RewriteResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Equal("rewritten", resp.Rewritten)
}

func TestTranslateText_VoiceWithoutMappingOmitsAudio(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, nil)

	src := "eng_Latn"
	// Sanskrit has no voice mapping; the response must simply omit the
	// audio reference rather than fail.
	w := postJSON(t, r, "/translate-text", TranslationRequest{
		Text: "hello", SrcLang: &src, TgtLang: "san_Deva", VoiceOutput: true,
	})
	req.Equal(http.StatusOK, w.Code)

	var resp TranslateResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Equal("translated:hello", resp.TranslatedText)
	req.Nil(resp.AudioFile)
}

func TestTranslateText_VoiceWithMappingReturnsAudioRef(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, nil)

	src := "eng_Latn"
	w := postJSON(t, r, "/translate-text", TranslationRequest{
		Text: "hello", SrcLang: &src, TgtLang: "fra_Latn", VoiceOutput: true,
	})
	req.Equal(http.StatusOK, w.Code)

	var resp TranslateResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.NotNil(resp.AudioFile)
	req.Equal("/download-audio/deadbeef.mp3", *resp.AudioFile)
}

func TestTranslateText_DegradedStillReturnsText(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, fmt.Errorf("model offline"))

	src := "fra_Latn"
	w := postJSON(t, r, "/translate-text", TranslationRequest{
		Text: "Bonjour", SrcLang: &src, TgtLang: "eng_Latn",
	})
	req.Equal(http.StatusOK, w.Code)

	var resp TranslateResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Equal("Bonjour", resp.TranslatedText)
	req.True(resp.Degraded)
}

func TestTranslateText_UnsupportedLanguage(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, nil)

	src := "eng_Latn"
	w := postJSON(t, r, "/translate-text", TranslationRequest{
		Text: "hello", SrcLang: &src, TgtLang: "xx_Latn",
	})
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestTranslateText_InvalidTier(t *testing.T) {
	req := require.New(t)
	r := newTestRouter(t, nil)

	src := "eng_Latn"
	w := postJSON(t, r, "/translate-text", TranslationRequest{
		Text: "hello", SrcLang: &src, TgtLang: "fra_Latn", Tier: "gigantic",
	})
	req.Equal(http.StatusBadRequest, w.Code)
}

// cappedRepo emulates the append-only store's read-back cap.
type cappedRepo struct {
	msgs []types.Message
}

func (c *cappedRepo) CreateMessage(_ context.Context, msg types.Message) (*types.Message, error) {
	c.msgs = append(c.msgs, msg)
	return &msg, nil
}

func (c *cappedRepo) ListRoomMessages(_ context.Context, _ string, limit int) ([]types.Message, error) {
	if len(c.msgs) <= limit {
		return c.msgs, nil
	}
	return c.msgs[len(c.msgs)-limit:], nil
}

func TestHistory_CapsAtConfiguredLimit(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)
	logger := Logger.New(true)

	repo := &cappedRepo{}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		repo.msgs = append(repo.msgs, types.Message{
			ID:        uuid.New(),
			RoomID:    "r1",
			UserID:    "alice",
			Text:      fmt.Sprintf("msg-%02d", i),
			SrcLang:   "eng_Latn",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	svc := chat.New(repo, 20, logger)
	r := gin.New()
	NewChatHandler(svc, nil, nil, logger).RegisterChatRoutes(r.Group("/"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/history?chatId=r1", nil))
	req.Equal(http.StatusOK, w.Code)

	var out []HistoryMessage
	req.NoError(json.Unmarshal(w.Body.Bytes(), &out))
	req.Len(out, 20, "history must never exceed the cap")
	req.Equal("msg-05", out[0].OriginalText, "only the most recent messages survive")
	for i := 1; i < len(out); i++ {
		req.False(out[i].CreatedAt.Before(out[i-1].CreatedAt))
	}
}

func TestHistory_RequiresChatID(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)
	logger := Logger.New(true)

	svc := chat.New(&cappedRepo{}, 20, logger)
	r := gin.New()
	NewChatHandler(svc, nil, nil, logger).RegisterChatRoutes(r.Group("/"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/history", nil))
	req.Equal(http.StatusBadRequest, w.Code)
}
