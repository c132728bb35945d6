// Package emotion classifies the emotion of English text via a hosted
// text-classification model.
package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultModel = "j-hartmann/emotion-english-distilroberta-base"

type Config struct {
	BaseURL string
	Token   string
	Model   string
	Client  *http.Client
	Timeout time.Duration
}

// Prediction is the top label returned by the classifier.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Classifier struct {
	cfg Config
}

func New(cfg Config) *Classifier {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Classifier{cfg: cfg}
}

// Classify returns the highest-scoring emotion label for text.
func (c *Classifier) Classify(ctx context.Context, text string) (Prediction, error) {
	body, err := json.Marshal(map[string]any{
		"inputs":  text,
		"options": map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return Prediction{}, err
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.cfg.BaseURL + "/models/" + c.cfg.Model
	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	hc := c.cfg.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("classification http %d: %s", resp.StatusCode, string(raw))
	}

	// The API returns either [[{label,score},...]] or [{label,score},...].
	var nested [][]Prediction
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return top(nested[0]), nil
	}
	var flat []Prediction
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return top(flat), nil
	}
	return Prediction{}, fmt.Errorf("unexpected classification response: %s", string(raw))
}

func top(preds []Prediction) Prediction {
	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best
}
