// Package gemini wraps the external generative-text service behind the
// three operations the UI needs: free-text insights, search-grounded
// market answers, and transcript-to-transaction extraction.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const (
	defaultInsightsModel   = "gemini-3-pro-preview"
	defaultExtractionModel = "gemini-3-flash-preview"
)

// Config holds client configuration. Zero values fall back to defaults.
type Config struct {
	APIKey          string
	BaseURL         string
	InsightsModel   string
	ExtractionModel string
	Timeout         time.Duration
	Retry           RetryConfig
	Logger          *logrus.Logger
}

// Client is an HTTP client for the Gemini generateContent API.
type Client struct {
	apiKey          string
	baseURL         string
	insightsModel   string
	extractionModel string
	httpClient      *http.Client
	retry           RetryConfig
	log             *logrus.Entry
}

// NewClient creates a new Gemini client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.InsightsModel == "" {
		cfg.InsightsModel = defaultInsightsModel
	}
	if cfg.ExtractionModel == "" {
		cfg.ExtractionModel = defaultExtractionModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialDelay == 0 {
		cfg.Retry = DefaultRetryConfig
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         cfg.BaseURL,
		insightsModel:   cfg.InsightsModel,
		extractionModel: cfg.ExtractionModel,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		retry:           cfg.Retry,
		log:             cfg.Logger.WithField("component", "gemini"),
	}
}

// Request/response wire types for generateContent.

type generatePart struct {
	Text string `json:"text,omitempty"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
	Role  string         `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature      *float64        `json:"temperature,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	Tools             []generateTool    `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type groundingWeb struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

type groundingChunk struct {
	Web *groundingWeb `json:"web,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []groundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// text concatenates the text parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// generate calls the generateContent endpoint for the given model,
// retrying transport-level failures per the client's retry policy.
func (c *Client) generate(ctx context.Context, op, model string, req generateRequest) (*generateResponse, error) {
	return WithRetry(ctx, c.retry, func(ctx context.Context) (*generateResponse, error) {
		return c.generateOnce(ctx, op, model, req)
	})
}

func (c *Client) generateOnce(ctx context.Context, op, model string, reqBody generateRequest) (*generateResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &GatewayError{Code: ErrBadRequest, Op: op, Message: "marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, &GatewayError{Code: ErrBadRequest, Op: op, Message: "create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Code: ErrUnavailable, Op: op, Message: "execute request", Retryable: true, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Code: ErrUnavailable, Op: op, Message: "read response", Retryable: true, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp.StatusCode, respBody)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GatewayError{Code: ErrEmptyResponse, Op: op, Message: "parse response", Cause: err}
	}
	if parsed.text() == "" {
		return nil, &GatewayError{Code: ErrEmptyResponse, Op: op, Message: "empty candidate text"}
	}

	return &parsed, nil
}

func statusError(op string, status int, body []byte) *GatewayError {
	msg := fmt.Sprintf("status %d: %s", status, truncate(string(body), 200))
	switch {
	case status == http.StatusTooManyRequests:
		return &GatewayError{Code: ErrRateLimited, Op: op, Message: msg, Retryable: true}
	case status >= 500:
		return &GatewayError{Code: ErrUnavailable, Op: op, Message: msg, Retryable: true}
	default:
		return &GatewayError{Code: ErrBadRequest, Op: op, Message: msg}
	}
}

// stripCodeFences removes markdown code fences the model sometimes wraps
// JSON output in, despite the response mime type constraint.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func floatPtr(f float64) *float64 { return &f }
