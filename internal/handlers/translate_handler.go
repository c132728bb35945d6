package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/linguabridge/internal/domains/translation"
	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"github.com/xpanvictor/linguabridge/pkg/nllb"
)

// TranslationRequest is the body of the base translate endpoint
type TranslationRequest struct {
	Text        string  `json:"text" binding:"required"`
	SrcLang     *string `json:"src_lang"`
	TgtLang     string  `json:"tgt_lang" binding:"required"`
	VoiceOutput bool    `json:"voice_output"`
	Tier        string  `json:"tier"`
}

// RewriteRequest is the body of the style rewrite endpoint
type RewriteRequest struct {
	Text    string `json:"text" binding:"required"`
	SrcLang string `json:"src_lang" binding:"required"`
	TgtLang string `json:"tgt_lang" binding:"required"`
	Style   string `json:"style" binding:"required"`
}

// CulturalRequest is the body of the cultural feedback endpoint
type CulturalRequest struct {
	Text    string `json:"text" binding:"required"`
	SrcLang string `json:"src_lang" binding:"required"`
}

// TranslateHandler handles the translation-related HTTP requests
type TranslateHandler struct {
	svc    *translation.Service
	logger *Logger.Logger
}

func NewTranslateHandler(svc *translation.Service, logger *Logger.Logger) *TranslateHandler {
	return &TranslateHandler{svc: svc, logger: logger}
}

// TranslateText translates text into a target language
// @Summary Translate text
// @Description Translate text between languages, optionally attaching emotion metadata and synthesized audio
// @Tags Translation
// @Accept json
// @Produce json
// @Param request body TranslationRequest true "Translation request"
// @Success 200 {object} TranslateResponse
// @Failure 400 {object} ErrorResponse "Unsupported language or tier"
// @Router /translate-text [post]
func (h *TranslateHandler) TranslateText(c *gin.Context) {
	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	src := detectIfAbsent(req.SrcLang, req.Text)
	tier, err := nllb.ParseTier(req.Tier, h.svc.DefaultTier())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid model tier", Details: err.Error()})
		return
	}

	ctx := c.Request.Context()
	res, err := h.svc.Translate(ctx, req.Text, src, lang.Code(req.TgtLang), tier)
	if err != nil {
		h.respondTranslationErr(c, err)
		return
	}

	resp := TranslateResponse{
		TranslatedText: res.Text,
		Degraded:       res.Degraded,
		Emotion:        h.svc.DetectEmotion(ctx, req.Text, src),
	}
	if req.VoiceOutput {
		if name, ok := h.svc.Synthesize(ctx, res.Text, lang.Code(req.TgtLang)); ok {
			ref := "/download-audio/" + name
			resp.AudioFile = &ref
		}
	}
	c.JSON(http.StatusOK, resp)
}

// RewriteStyle rewrites a translation in a given tone
// @Summary Rewrite translation with a tone
// @Description Translate text and rewrite the result in one of the enumerated styles
// @Tags Translation
// @Accept json
// @Produce json
// @Param request body RewriteRequest true "Rewrite request"
// @Success 200 {object} RewriteResponse
// @Failure 400 {object} InvalidStyleResponse "Style outside the allowed set"
// @Failure 502 {object} ErrorResponse "Generative rewrite failed"
// @Router /rewrite-style [post]
func (h *TranslateHandler) RewriteStyle(c *gin.Context) {
	var req RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	out, err := h.svc.RewriteStyle(c.Request.Context(), req.Text, lang.Code(req.SrcLang), lang.Code(req.TgtLang), req.Style)
	if err != nil {
		var styleErr translation.InvalidStyleError
		if errors.As(err, &styleErr) {
			c.JSON(http.StatusBadRequest, InvalidStyleResponse{
				Error:         "Invalid style",
				AllowedStyles: styleErr.Allowed,
			})
			return
		}
		var langErr lang.UnsupportedError
		if errors.As(err, &langErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported language", Details: langErr.Error()})
			return
		}
		h.logger.Errorf("style rewrite error: %v", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Style rewrite failed"})
		return
	}
	c.JSON(http.StatusOK, RewriteResponse{Rewritten: out})
}

// CulturalFeedback returns a cultural note about text in its language
// @Summary Cultural feedback
// @Description Produce a short linguistic and cultural note for a sentence
// @Tags Translation
// @Accept json
// @Produce json
// @Param request body CulturalRequest true "Cultural feedback request"
// @Success 200 {object} FeedbackResponse
// @Failure 400 {object} ErrorResponse "Unsupported language"
// @Router /cultural-feedback [post]
func (h *TranslateHandler) CulturalFeedback(c *gin.Context) {
	var req CulturalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		return
	}

	out, err := h.svc.CulturalFeedback(c.Request.Context(), req.Text, lang.Code(req.SrcLang))
	if err != nil {
		h.respondTranslationErr(c, err)
		return
	}
	c.JSON(http.StatusOK, FeedbackResponse{Feedback: out})
}

func (h *TranslateHandler) respondTranslationErr(c *gin.Context, err error) {
	var langErr lang.UnsupportedError
	if errors.As(err, &langErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported language", Details: langErr.Error()})
		return
	}
	h.logger.Errorf("translation error: %v", err)
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Translation failed"})
}

func (h *TranslateHandler) RegisterTranslateRoutes(r *gin.RouterGroup) {
	r.POST("/translate-text", h.TranslateText)
	r.POST("/rewrite-style", h.RewriteStyle)
	r.POST("/cultural-feedback", h.CulturalFeedback)
}

func detectIfAbsent(src *string, text string) lang.Code {
	if src != nil && *src != "" {
		return lang.Code(*src)
	}
	return lang.Detect(text)
}
