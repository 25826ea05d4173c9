// Package llmprovider implements the llm.Provider boundary against the
// OpenRouter chat completions API.
package llmprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/infrastructure/metrics"
)

// Options configures the OpenRouter client. Referer and Title become the
// HTTP-Referer and X-Title attribution headers OpenRouter asks for.
type Options struct {
	BaseURL string
	APIKey  string
	Referer string
	Title   string
	Timeout time.Duration
}

// Client implements the llm.Provider interface.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a Resty-backed OpenRouter client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 75 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+opts.APIKey).
		SetTimeout(opts.Timeout)
	if opts.Referer != "" {
		httpClient.SetHeader("HTTP-Referer", opts.Referer)
	}
	if opts.Title != "" {
		httpClient.SetHeader("X-Title", opts.Title)
	}

	return &Client{httpClient: httpClient}
}

// CreateChatCompletion calls /chat/completions.
func (c *Client) CreateChatCompletion(ctx context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	start := time.Now()

	var completion llm.ChatCompletionResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&completion).
		Post("/chat/completions")
	if err != nil {
		metrics.RecordCompletionCall(req.Model, "transport_error", time.Since(start))
		return nil, err
	}

	if resp.IsError() {
		metrics.RecordCompletionCall(req.Model, fmt.Sprintf("http_%d", resp.StatusCode()), time.Since(start))
		return nil, &llm.StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	metrics.RecordCompletionCall(req.Model, "ok", time.Since(start))
	if completion.Usage != nil {
		metrics.RecordTokenUsage(req.Model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}
	return &completion, nil
}

// Ensure interface compliance.
var _ llm.Provider = (*Client)(nil)
