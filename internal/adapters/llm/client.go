// Package llm generates campaign ideas through an OpenAI-compatible chat
// completions endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.8
	defaultMaxTokens   = 1500

	systemPrompt = "You are a helpful marketing expert for home service businesses. Always respond with valid JSON."
)

// Client calls a chat completions API to turn a month's calendar context into
// campaign ideas.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL points the client at an alternative OpenAI-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel overrides the completion model.
func WithModel(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.model = m
		}
	}
}

// WithTimeout bounds each completion request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a completion client. The API key is required by the remote end
// but not validated here so tests can run against local fakes.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		model:       defaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logger.Get().Named("llm"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateCampaigns builds the month prompt, runs the completion and parses
// campaign ideas out of whatever the model returned.
func (c *Client) GenerateCampaigns(ctx context.Context, payload model.CampaignPromptPayload) ([]model.CampaignIdea, error) {
	content, err := c.complete(ctx, BuildPrompt(payload))
	if err != nil {
		return nil, err
	}

	ideas := ParseCampaigns(content)
	if len(ideas) == 0 {
		return nil, fmt.Errorf("no campaigns in response: %w", ErrEmptyResponse)
	}
	c.logger.Debug(ctx, "campaigns generated",
		logger.String("month", payload.Month),
		logger.Int("count", len(ideas)))
	return ideas, nil
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error(ctx, "completion request rejected",
			logger.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrRequest, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Choices[0].Message.Content, nil
}
