// Package translation orchestrates the translation paths: the statistical
// NLLB pipelines, the generative fallback for low-support languages, and the
// optional style, cultural-note, emotion and voice modes layered on top.
package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/xpanvictor/linguabridge/internal/lang"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"github.com/xpanvictor/linguabridge/pkg/emotion"
	"github.com/xpanvictor/linguabridge/pkg/llm"
	"github.com/xpanvictor/linguabridge/pkg/nllb"
)

// PivotLang is the language emotion classification runs on; non-pivot input
// is translated to it first.
const PivotLang = lang.English

// MachineTranslator is the statistical translation path (pipeline cache
// behind it).
type MachineTranslator interface {
	Translate(ctx context.Context, text string, src, tgt lang.Code, tier nllb.ModelTier) (string, error)
}

// EmotionClassifier labels pivot-language text.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (emotion.Prediction, error)
}

// Synthesizer renders text to audio bytes for a voice tag.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// AudioSink stores synthesized audio and returns a retrievable filename.
type AudioSink interface {
	Save(data []byte) (string, error)
}

// Result is the outcome of the base translate path. Degraded marks the
// deliberate fall-back-to-original policy: on any translation failure the
// input text is returned unchanged instead of an error. On the wire a
// degraded result is indistinguishable from text already in the target
// language; that ambiguity is inherited from the product behavior and is
// intentionally not resolved here.
type Result struct {
	Text     string
	Degraded bool
}

// Emotion is an optional classification attached to a translation.
type Emotion struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Service struct {
	mt          MachineTranslator
	llm         llm.Client
	emotions    EmotionClassifier
	tts         Synthesizer
	audio       AudioSink
	defaultTier nllb.ModelTier
	logger      *Logger.Logger
}

func New(
	mt MachineTranslator,
	llmClient llm.Client,
	emotions EmotionClassifier,
	tts Synthesizer,
	audio AudioSink,
	defaultTier nllb.ModelTier,
	logger *Logger.Logger,
) *Service {
	if defaultTier == "" {
		defaultTier = nllb.TierSmall
	}
	return &Service{
		mt:          mt,
		llm:         llmClient,
		emotions:    emotions,
		tts:         tts,
		audio:       audio,
		defaultTier: defaultTier,
		logger:      logger,
	}
}

func (s *Service) DefaultTier() nllb.ModelTier { return s.defaultTier }

// Translate runs the base translate path. Language codes outside the
// vocabulary fail the whole call; translation failures degrade to the
// original text.
func (s *Service) Translate(ctx context.Context, text string, src, tgt lang.Code, tier nllb.ModelTier) (Result, error) {
	if err := lang.Validate(src); err != nil {
		return Result{}, err
	}
	if err := lang.Validate(tgt); err != nil {
		return Result{}, err
	}
	if tier == "" {
		tier = s.defaultTier
	}
	if src == tgt {
		return Result{Text: text}, nil
	}

	var (
		out string
		err error
	)
	if lang.LowSupport(src) || lang.LowSupport(tgt) {
		out, err = s.generativeTranslate(ctx, text, src, tgt)
	} else {
		out, err = s.mt.Translate(ctx, text, src, tgt, tier)
	}
	if err != nil {
		s.logger.Warnf("translation %s->%s degraded to original text: %v", src, tgt, err)
		return Result{Text: text, Degraded: true}, nil
	}
	return Result{Text: out}, nil
}

func (s *Service) generativeTranslate(ctx context.Context, text string, src, tgt lang.Code) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text from %s (%s) to %s (%s). Return only the translation.\n\n%s",
		lang.Name(src), src, lang.Name(tgt), tgt, text,
	)
	return s.llm.Complete(ctx, prompt)
}

// RewriteStyle obtains a literal translation and asks the generative model
// to adjust its tone. Unlike the base path, generative failures here are
// surfaced to the caller.
func (s *Service) RewriteStyle(ctx context.Context, text string, src, tgt lang.Code, style string) (string, error) {
	if err := ValidateStyle(style); err != nil {
		return "", err
	}
	literal, err := s.Translate(ctx, text, src, tgt, s.defaultTier)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"Rewrite the text in %s. Tone: %s.\n\nOriginal:\n%s\n\nLiteral:\n%s\n\nReturn only rewritten output.",
		lang.Name(tgt), style, text, literal.Text,
	)
	out, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("style rewrite failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// CulturalFeedback produces a short cultural note about text in its source
// language. Independent of the translation pipelines.
func (s *Service) CulturalFeedback(ctx context.Context, text string, src lang.Code) (string, error) {
	if err := lang.Validate(src); err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(
		"Linguistic and cultural insight for a sentence in %s (%s):\n%q\n\nShort, 3-4 sentences, include a fun fact.",
		lang.Name(src), src, text,
	)
	out, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("cultural feedback failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// DetectEmotion classifies the emotion of text, pivoting through English
// first when needed. Best-effort: any failure in the chain yields nil
// rather than an error.
func (s *Service) DetectEmotion(ctx context.Context, text string, src lang.Code) *Emotion {
	input := text
	if src != PivotLang {
		res, err := s.Translate(ctx, text, src, PivotLang, s.defaultTier)
		if err != nil {
			s.logger.Warnf("emotion pivot translation failed: %v", err)
			return nil
		}
		input = res.Text
	}
	pred, err := s.emotions.Classify(ctx, input)
	if err != nil {
		s.logger.Warnf("emotion classification failed: %v", err)
		return nil
	}
	return &Emotion{Label: strings.ToLower(pred.Label), Score: pred.Score}
}

// Synthesize renders translated text to audio when the target has a voice
// mapping. Best-effort: on any failure it reports no audio instead of an
// error.
func (s *Service) Synthesize(ctx context.Context, text string, tgt lang.Code) (string, bool) {
	voice, ok := lang.VoiceFor(tgt)
	if !ok {
		return "", false
	}
	data, err := s.tts.Synthesize(ctx, text, voice)
	if err != nil {
		s.logger.Warnf("speech synthesis for %s skipped: %v", tgt, err)
		return "", false
	}
	name, err := s.audio.Save(data)
	if err != nil {
		s.logger.Warnf("storing synthesized audio failed: %v", err)
		return "", false
	}
	return name, true
}
