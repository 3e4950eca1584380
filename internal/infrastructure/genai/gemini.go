// Package genai implements the model-client boundary against the Gemini
// generateContent REST API. The model is treated as a black box: text parts
// in, natural-language text out.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bonehealth/analysis-system/internal/core/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 60 * time.Second
)

// Config captures the settings for the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Gemini generateContent endpoint over plain HTTP.
type Client struct {
	cfg   Config
	httpc *http.Client
	log   zerolog.Logger
}

// NewClient builds a Client, applying defaults for model, base URL, and timeout.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
}

// ModelName reports the configured model identifier.
func (c *Client) ModelName() string {
	return c.cfg.Model
}

// Wire types for the generateContent request/response.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate sends one prompt to the model and returns the generated text.
// Part order mirrors the upstream contract: instruction, then the image when
// present, then auxiliary text, then the audience hint.
func (c *Client) Generate(ctx context.Context, in ports.GenerateInput) (string, error) {
	parts := []part{{Text: in.Instruction}}
	if len(in.ImageData) > 0 {
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: in.ImageMIME,
			Data:     base64.StdEncoding.EncodeToString(in.ImageData),
		}})
	}
	if in.Auxiliary != "" {
		parts = append(parts, part{Text: in.Auxiliary})
	}
	if in.AudienceHint != "" {
		parts = append(parts, part{Text: in.AudienceHint})
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini: %s (status %d)", parsed.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	text := collectText(parsed)
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}

	c.log.Debug().
		Str("model", c.cfg.Model).
		Dur("elapsed", time.Since(start)).
		Int("response_bytes", len(raw)).
		Msg("model call completed")

	return text, nil
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
