package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/xpanvictor/linguabridge/internal/domains/chat"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/internal/types"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"github.com/xpanvictor/linguabridge/pkg/io/audiostore"
	"github.com/xpanvictor/linguabridge/pkg/io/stt"
)

// ChatHandler serves chat history, audio downloads and transcription
type ChatHandler struct {
	chatSvc    *chat.Service
	audio      *audiostore.Store
	recognizer *stt.Recognizer
	logger     *Logger.Logger
}

func NewChatHandler(chatSvc *chat.Service, audio *audiostore.Store, recognizer *stt.Recognizer, logger *Logger.Logger) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, audio: audio, recognizer: recognizer, logger: logger}
}

// History returns the most recent messages of a room, oldest first
// @Summary Chat history
// @Description Return the last messages persisted for a room in chronological order
// @Tags Chat
// @Produce json
// @Param chatId query string true "Room identifier"
// @Success 200 {array} HistoryMessage
// @Failure 400 {object} ErrorResponse "Missing chatId"
// @Router /chat/history [get]
func (h *ChatHandler) History(c *gin.Context) {
	chatID := c.Query("chatId")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "chatId is required"})
		return
	}

	msgs, err := h.chatSvc.History(c.Request.Context(), chatID)
	if err != nil {
		h.logger.Errorf("history for room %s: %v", chatID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(msgs, func(m types.Message, _ int) HistoryMessage {
		return HistoryMessage{
			ID:           m.ID.String(),
			UserID:       m.UserID,
			OriginalText: m.Text,
			SrcLang:      string(m.SrcLang),
			CreatedAt:    m.CreatedAt,
		}
	}))
}

// DownloadAudio streams a previously synthesized audio file
// @Summary Download synthesized audio
// @Tags Chat
// @Produce octet-stream
// @Param filename path string true "Audio filename"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "Audio missing"
// @Router /download-audio/{filename} [get]
func (h *ChatHandler) DownloadAudio(c *gin.Context) {
	name := c.Param("filename")
	path, err := h.audio.Path(name)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Audio missing"})
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.FileAttachment(path, name)
}

// TranscribeAudio transcribes an uploaded audio file and detects its language
// @Summary Transcribe audio
// @Tags Chat
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file (wav or mp3)"
// @Success 200 {object} TranscriptionResponse
// @Failure 400 {object} ErrorResponse "Missing file"
// @Failure 502 {object} ErrorResponse "Transcription failed"
// @Router /transcribe-audio [post]
func (h *ChatHandler) TranscribeAudio(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Audio file is required", Details: err.Error()})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cannot read audio file", Details: err.Error()})
		return
	}
	defer f.Close()

	text, err := h.recognizer.Transcribe(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.logger.Errorf("transcription failed: %v", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Transcription failed"})
		return
	}

	c.JSON(http.StatusOK, TranscriptionResponse{
		Text:    text,
		SrcLang: string(lang.Detect(text)),
	})
}

func (h *ChatHandler) RegisterChatRoutes(r *gin.RouterGroup) {
	r.GET("/chat/history", h.History)
	r.GET("/download-audio/:filename", h.DownloadAudio)
	r.POST("/transcribe-audio", h.TranscribeAudio)
}
