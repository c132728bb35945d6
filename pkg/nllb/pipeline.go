// Package nllb provides translation pipelines backed by NLLB-200 models
// served over an inference HTTP API, plus the process-wide cache that
// memoizes them per (tier, source, target) key.
package nllb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xpanvictor/linguabridge/internal/lang"
)

// ModelTier selects the NLLB-200 checkpoint size.
type ModelTier string

const (
	TierSmall  ModelTier = "small"  // fast, distilled 600M
	TierMedium ModelTier = "medium" // balanced, distilled 1.3B
	TierLarge  ModelTier = "large"  // high quality, 3.3B
)

var tierModels = map[ModelTier]string{
	TierSmall:  "facebook/nllb-200-distilled-600M",
	TierMedium: "facebook/nllb-200-distilled-1.3B",
	TierLarge:  "facebook/nllb-200-3.3B",
}

// ModelName resolves the checkpoint identifier for the tier.
func (t ModelTier) ModelName() (string, error) {
	m, ok := tierModels[t]
	if !ok {
		return "", fmt.Errorf("unknown model tier %q", t)
	}
	return m, nil
}

// ParseTier validates a tier name, defaulting empty input to def.
func ParseTier(s string, def ModelTier) (ModelTier, error) {
	if s == "" {
		return def, nil
	}
	t := ModelTier(s)
	if _, ok := tierModels[t]; !ok {
		return "", fmt.Errorf("unknown model tier %q", s)
	}
	return t, nil
}

// Config holds the inference endpoint settings shared by all pipelines.
type Config struct {
	BaseURL string        // e.g. "https://api-inference.huggingface.co"
	Token   string        // bearer token, optional for self-hosted servers
	Client  *http.Client  // inject; default if nil
	Timeout time.Duration // per translate call
}

// Pipeline is a ready-to-use translation resource for one fixed
// (model, source, target) combination.
type Pipeline struct {
	model string
	src   lang.Code
	tgt   lang.Code
	cfg   Config
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceParameters struct {
	SrcLang   string `json:"src_lang"`
	TgtLang   string `json:"tgt_lang"`
	MaxLength int    `json:"max_length"`
}

type inferenceOptions struct {
	// NLLB checkpoints are loaded on demand server-side; without this the
	// first call per model returns 503.
	WaitForModel bool `json:"wait_for_model"`
}

func newPipeline(cfg Config, key Key) (*Pipeline, error) {
	model, err := key.Tier.ModelName()
	if err != nil {
		return nil, err
	}
	if err := lang.Validate(key.Src); err != nil {
		return nil, err
	}
	if err := lang.Validate(key.Tgt); err != nil {
		return nil, err
	}
	if lang.LowSupport(key.Src) || lang.LowSupport(key.Tgt) {
		return nil, fmt.Errorf("pair %s->%s is outside the model's supported set", key.Src, key.Tgt)
	}
	return &Pipeline{
		model: model,
		src:   key.Src,
		tgt:   key.Tgt,
		cfg:   cfg,
	}, nil
}

// Translate runs text through the pipeline and returns the translated text.
func (p *Pipeline) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			SrcLang:   string(p.src),
			TgtLang:   string(p.tgt),
			MaxLength: 400,
		},
		Options: inferenceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", err
	}

	timeout := p.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := p.cfg.BaseURL + "/models/" + p.model
	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	}

	hc := p.cfg.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation http %d: %s", resp.StatusCode, string(raw))
	}

	var results []struct {
		TranslationText string `json:"translation_text"`
	}
	if err := json.Unmarshal(raw, &results); err == nil && len(results) > 0 {
		return results[0].TranslationText, nil
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
		return "", fmt.Errorf("translation api error: %s", apiErr.Error)
	}
	return "", fmt.Errorf("unexpected translation response: %s", string(raw))
}
