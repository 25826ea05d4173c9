package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/retry"
	"decksnap/slides-api/internal/domain/status"
)

// ProviderError is returned once the gateway exhausts its retry budget
// against the upstream completion service. The generation loop treats it
// as fatal and does not retry again at its own level.
type ProviderError struct {
	Attempts int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err wraps a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// StatusError is a non-2xx response from the completion service. The HTTP
// status decides whether the attempt is worth repeating.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openrouter status %d: %s", e.StatusCode, e.Body)
}

// classifySeverity maps a completion failure to a retry severity. Rate
// limits and timeouts are transient; any other 4xx means the request itself
// is bad and repeating it cannot help.
func classifySeverity(err error) status.ErrorSeverity {
	var se *StatusError
	if !errors.As(err, &se) {
		return status.ErrorSeverityRetryable
	}
	switch {
	case se.StatusCode == http.StatusTooManyRequests || se.StatusCode == http.StatusRequestTimeout:
		return status.ErrorSeverityRetryable
	case se.StatusCode >= 400 && se.StatusCode < 500:
		return status.ErrorSeverityFatal
	default:
		return status.ErrorSeverityRetryable
	}
}

// AssistantTurn is one assistant response: optional text content plus the
// ordered tool calls the model requested.
type AssistantTurn struct {
	Message   ChatMessage
	Content   string
	ToolCalls []ToolCall
	Usage     *Usage
}

// CompletionResult carries the text outcome of a plain completion.
type CompletionResult struct {
	Text  string
	Usage *Usage
}

// Gateway wraps a Provider with a bounded retry policy. Each call is
// stateless given its message list; nothing is cached between calls.
type Gateway struct {
	provider Provider
	model    string
	policy   retry.Policy
	log      zerolog.Logger
}

// GatewayPolicy is the retry posture for upstream completion calls:
// three attempts total with exponential backoff.
func GatewayPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries:      2,
		InitialDelay:    1 * time.Second,
		MaxDelay:        8 * time.Second,
		BackoffStrategy: retry.BackoffExponential,
		JitterFactor:    0.2,
	}
}

// NewGateway constructs a gateway for the given provider and model.
func NewGateway(provider Provider, model string, policy retry.Policy, log zerolog.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		model:    model,
		policy:   policy,
		log:      log.With().Str("component", "llm-gateway").Logger(),
	}
}

// Model returns the configured model identifier.
func (g *Gateway) Model() string {
	return g.model
}

// CompleteWithTools sends the conversation plus tool catalog and returns the
// assistant's turn. Transient failures are retried with backoff; exhaustion
// surfaces as a ProviderError.
func (g *Gateway) CompleteWithTools(ctx context.Context, messages []ChatMessage, tools []ToolDefinition, temperature float64) (*AssistantTurn, error) {
	req := ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: &temperature,
	}

	choice, usage, err := g.call(ctx, req)
	if err != nil {
		return nil, err
	}

	return &AssistantTurn{
		Message:   choice.Message,
		Content:   ContentText(choice.Message.Content),
		ToolCalls: choice.Message.ToolCalls,
		Usage:     usage,
	}, nil
}

// Complete sends the conversation without tools and returns plain text.
func (g *Gateway) Complete(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens *int) (*CompletionResult, error) {
	req := ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   maxTokens,
	}

	choice, usage, err := g.call(ctx, req)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Text:  ContentText(choice.Message.Content),
		Usage: usage,
	}, nil
}

func (g *Gateway) call(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionChoice, *Usage, error) {
	attempts := 0
	resp, err := retry.ExecuteWithResult(ctx, g.policy, classifySeverity, func(ctx context.Context, attempt int) (*ChatCompletionResponse, error) {
		attempts = attempt + 1
		resp, err := g.provider.CreateChatCompletion(ctx, req)
		if err != nil {
			severity := classifySeverity(err)
			evt := g.log.Warn()
			if severity.IsFatal() {
				evt = g.log.Error()
			}
			evt.Err(err).Int("attempt", attempts).Str("severity", severity.String()).Msg("chat completion attempt failed")
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("provider returned no choices")
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, err
		}
		return nil, nil, &ProviderError{Attempts: attempts, Err: err}
	}

	return &resp.Choices[0], resp.Usage, nil
}
