package deck_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/retry"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
)

// scriptedProvider replays a fixed sequence of completion responses and
// records every request it receives.
type scriptedProvider struct {
	responses []*llm.ChatCompletionResponse
	requests  []llm.ChatCompletionRequest
	err       error
}

func (p *scriptedProvider) CreateChatCompletion(_ context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	idx := len(p.requests) - 1
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return p.responses[idx], nil
}

type recordingResolver struct {
	queries []string
	image   *slide.Image
}

func (r *recordingResolver) SearchImage(_ context.Context, query string) *slide.Image {
	r.queries = append(r.queries, query)
	return r.image
}

type recordingSink struct {
	slides []slide.Slide
	err    error
}

func (s *recordingSink) AppendSlide(_ context.Context, _ uint, sl slide.Slide) error {
	if s.err != nil {
		return s.err
	}
	s.slides = append(s.slides, sl)
	return nil
}

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries:      1,
		InitialDelay:    time.Millisecond,
		MaxDelay:        time.Millisecond,
		BackoffStrategy: retry.BackoffFixed,
	}
}

func newTestEngine(p llm.Provider, resolver deck.ImageResolver) *deck.Engine {
	gateway := llm.NewGateway(p, "test-model", fastPolicy(), zerolog.Nop())
	if resolver == nil {
		resolver = &recordingResolver{}
	}
	return deck.NewEngine(gateway, resolver, zerolog.Nop())
}

func assistantTurn(content string, calls ...llm.ToolCall) *llm.ChatCompletionResponse {
	return &llm.ChatCompletionResponse{
		Choices: []llm.ChatCompletionChoice{{
			Message: llm.ChatMessage{Role: "assistant", Content: content, ToolCalls: calls},
		}},
		Usage: &llm.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func addSlideCall(id string, args string) llm.ToolCall {
	return llm.ToolCall{
		ID:   id,
		Type: "function",
		Function: llm.ToolFunction{
			Name:      "add_slide",
			Arguments: json.RawMessage(args),
		},
	}
}

func finishCall(id, title string) llm.ToolCall {
	return llm.ToolCall{
		ID:   id,
		Type: "function",
		Function: llm.ToolFunction{
			Name:      "finish_presentation",
			Arguments: json.RawMessage(fmt.Sprintf(`{"title": %q}`, title)),
		},
	}
}

func collectEvents() (*deck.Emitter, *[]deck.Event) {
	events := &[]deck.Event{}
	emitter := deck.NewEmitter(func(ev deck.Event) {
		*events = append(*events, ev)
	})
	return emitter, events
}

func eventTypes(events []deck.Event) []deck.EventType {
	out := make([]deck.EventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Type)
	}
	return out
}

func TestEngineRunEventAndSlideOrdering(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("starting with the opener",
			addSlideCall("call_1", `{"slide_type": "title", "title": "Q3 Review", "subtitle": "Revenue", "order": 99}`),
			addSlideCall("call_2", `{"slide_type": "bullets", "title": "Highlights", "bullets": ["a", "b"]}`),
		),
		assistantTurn("wrapping up",
			addSlideCall("call_3", `{"slide_type": "content", "title": "Outlook", "body": "Steady."}`),
			finishCall("call_4", "Q3 Business Review"),
			addSlideCall("call_5", `{"slide_type": "content", "title": "Should never land"}`),
		),
	}}
	sink := &recordingSink{}
	emitter, events := collectEvents()

	doc := &deck.Document{ID: 1, PublicID: "pres_test", SourceText: "quarterly numbers"}
	outcome, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{
		Doc:        doc,
		SlideCount: 3,
		Store:      sink,
		Emitter:    emitter,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != status.StatusCompleted {
		t.Fatalf("outcome = %s, want %s", outcome, status.StatusCompleted)
	}

	want := []deck.EventType{
		deck.EventThinking,
		deck.EventToolCall, deck.EventToolResult,
		deck.EventToolCall, deck.EventToolResult,
		deck.EventThinking,
		deck.EventToolCall, deck.EventToolResult,
		deck.EventToolCall, deck.EventToolResult,
	}
	got := eventTypes(*events)
	if len(got) != len(want) {
		t.Fatalf("event count = %d (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if len(doc.Slides) != 3 {
		t.Fatalf("slide count = %d, want 3", len(doc.Slides))
	}
	for i, s := range doc.Slides {
		if s.Order != i {
			t.Errorf("slide[%d].Order = %d, want %d", i, s.Order, i)
		}
	}
	if doc.Slides[0].Type != slide.TypeTitle {
		t.Errorf("first slide type = %s, want %s", doc.Slides[0].Type, slide.TypeTitle)
	}
	if doc.Title != "Q3 Business Review" {
		t.Errorf("title = %q, want %q", doc.Title, "Q3 Business Review")
	}
	if doc.Usage == nil || doc.Usage.TotalTokens != 30 {
		t.Errorf("usage not accumulated: %+v", doc.Usage)
	}

	// Call five arrived after finish_presentation in the same batch and
	// must not have been executed.
	if len(sink.slides) != 3 {
		t.Errorf("persisted slide count = %d, want 3", len(sink.slides))
	}

	// Each tool_call event for add_slide carries the stamped slide preview.
	preview := (*events)[1]
	if preview.Slide == nil || preview.Slide.Order != 0 {
		t.Errorf("tool_call preview missing or unordered: %+v", preview.Slide)
	}
}

func TestEngineRunImplicitFinish(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("nothing more to add"),
	}}
	emitter, events := collectEvents()

	doc := &deck.Document{ID: 1, SourceText: "brief"}
	outcome, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{
		Doc: doc, Store: &recordingSink{}, Emitter: emitter,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != status.StatusCompleted {
		t.Errorf("outcome = %s, want %s", outcome, status.StatusCompleted)
	}
	if len(doc.Slides) != 0 {
		t.Errorf("slide count = %d, want 0", len(doc.Slides))
	}
	got := eventTypes(*events)
	if len(got) != 1 || got[0] != deck.EventThinking {
		t.Errorf("events = %v, want single thinking event", got)
	}
}

func TestEngineRunIterationBudgetExhausted(t *testing.T) {
	// The agent keeps adding slides and never finishes.
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("more", addSlideCall("call_a", `{"slide_type": "content", "title": "Again"}`)),
	}}
	sink := &recordingSink{}

	doc := &deck.Document{ID: 1, SourceText: "looping"}
	engine := newTestEngine(provider, nil).WithMaxIterations(3)
	outcome, err := engine.Run(context.Background(), deck.RunParams{Doc: doc, Store: sink})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != status.StatusExhausted {
		t.Errorf("outcome = %s, want %s", outcome, status.StatusExhausted)
	}
	if len(doc.Slides) != 3 {
		t.Errorf("slide count = %d, want 3", len(doc.Slides))
	}
	if len(provider.requests) != 3 {
		t.Errorf("completion calls = %d, want 3", len(provider.requests))
	}
}

func TestEngineRunMalformedCallSkipped(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("adding",
			addSlideCall("call_bad", `{"slide_type": `),
			addSlideCall("call_ok", `{"slide_type": "content", "title": "Survivor"}`),
		),
		assistantTurn("done", finishCall("call_fin", "Resilient Deck")),
	}}
	sink := &recordingSink{}

	doc := &deck.Document{ID: 1, SourceText: "noisy"}
	outcome, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{Doc: doc, Store: sink})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != status.StatusCompleted {
		t.Errorf("outcome = %s, want %s", outcome, status.StatusCompleted)
	}
	if len(doc.Slides) != 1 || doc.Slides[0].Order != 0 {
		t.Fatalf("slides = %+v, want one slide at order 0", doc.Slides)
	}

	// The second request must carry a diagnostic tool message for the bad
	// call so the conversation stays protocol-valid.
	if len(provider.requests) != 2 {
		t.Fatalf("completion calls = %d, want 2", len(provider.requests))
	}
	found := false
	for _, msg := range provider.requests[1].Messages {
		if msg.Role == "tool" && msg.ToolCallID != nil && *msg.ToolCallID == "call_bad" {
			found = true
			if text := llm.ContentText(msg.Content); !strings.Contains(text, "invalid arguments") {
				t.Errorf("diagnostic content = %q", text)
			}
		}
	}
	if !found {
		t.Error("no diagnostic tool message for the malformed call")
	}
}

func TestEngineRunResolvesImageOncePerQuery(t *testing.T) {
	resolver := &recordingResolver{image: &slide.Image{URL: "https://images.test/sunrise.jpg", Credit: "Ana"}}
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("with imagery",
			addSlideCall("call_1", `{"slide_type": "title", "title": "Dawn", "image_query": "mountain sunrise"}`),
			addSlideCall("call_2", `{"slide_type": "content", "title": "Plain"}`),
		),
		assistantTurn("done", finishCall("call_3", "Dawn Patrol")),
	}}

	doc := &deck.Document{ID: 1, SourceText: "hiking"}
	if _, err := newTestEngine(provider, resolver).Run(context.Background(), deck.RunParams{Doc: doc, Store: &recordingSink{}}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(resolver.queries) != 1 || resolver.queries[0] != "mountain sunrise" {
		t.Fatalf("resolver queries = %v, want exactly one for the query slide", resolver.queries)
	}
	if doc.Slides[0].Image == nil || doc.Slides[0].Image.URL != "https://images.test/sunrise.jpg" {
		t.Errorf("slide image = %+v, want resolved image", doc.Slides[0].Image)
	}
	if doc.Slides[1].Image != nil {
		t.Errorf("slide without query got image %+v", doc.Slides[1].Image)
	}
}

func TestEngineRunImageMissIsNotAnError(t *testing.T) {
	resolver := &recordingResolver{image: nil}
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("trying",
			addSlideCall("call_1", `{"slide_type": "title", "title": "Dawn", "image_query": "no such thing"}`),
		),
		assistantTurn("done", finishCall("call_2", "Dawn")),
	}}

	doc := &deck.Document{ID: 1, SourceText: "hiking"}
	outcome, err := newTestEngine(provider, resolver).Run(context.Background(), deck.RunParams{Doc: doc, Store: &recordingSink{}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != status.StatusCompleted {
		t.Errorf("outcome = %s, want %s", outcome, status.StatusCompleted)
	}
	if doc.Slides[0].Image != nil {
		t.Errorf("image = %+v, want nil after resolver miss", doc.Slides[0].Image)
	}
	if doc.Slides[0].ImageQuery == nil {
		t.Error("image query should survive a miss")
	}
}

func TestEngineRunPersistFailureIsFatal(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("adding", addSlideCall("call_1", `{"slide_type": "title", "title": "Doomed"}`)),
	}}
	sink := &recordingSink{err: errors.New("disk full")}

	doc := &deck.Document{ID: 1, SourceText: "short"}
	_, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{Doc: doc, Store: sink})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Run() error = %v, want persistence failure", err)
	}
}

func TestEngineRunProviderErrorIsFatal(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("upstream down")}

	doc := &deck.Document{ID: 1, SourceText: "short"}
	_, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{Doc: doc, Store: &recordingSink{}})
	if err == nil {
		t.Fatal("Run() error = nil, want provider error")
	}
	if !llm.IsProviderError(err) {
		t.Errorf("error %v is not a provider error", err)
	}
}

func TestEngineRunEmitsThinkingBeforeCompletionCall(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("upstream down")}
	emitter, events := collectEvents()

	doc := &deck.Document{ID: 1, SourceText: "short"}
	_, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{Doc: doc, Store: &recordingSink{}, Emitter: emitter})
	if err == nil {
		t.Fatal("Run() error = nil, want provider error")
	}
	if len(*events) != 1 || (*events)[0].Type != deck.EventThinking {
		t.Fatalf("events = %v, want a single thinking event ahead of the failed completion", eventTypes(*events))
	}
}

func TestEngineRunUnknownToolFedBack(t *testing.T) {
	unknown := llm.ToolCall{
		ID:   "call_x",
		Type: "function",
		Function: llm.ToolFunction{
			Name:      "render_pdf",
			Arguments: json.RawMessage(`{}`),
		},
	}
	provider := &scriptedProvider{responses: []*llm.ChatCompletionResponse{
		assistantTurn("trying", unknown),
		assistantTurn("done", finishCall("call_y", "Recovered")),
	}}
	emitter, events := collectEvents()

	doc := &deck.Document{ID: 1, SourceText: "short"}
	outcome, err := newTestEngine(provider, nil).Run(context.Background(), deck.RunParams{Doc: doc, Store: &recordingSink{}, Emitter: emitter})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome != status.StatusCompleted {
		t.Errorf("outcome = %s, want %s", outcome, status.StatusCompleted)
	}

	var result *deck.ToolResult
	for _, ev := range *events {
		if ev.Type == deck.EventToolResult && ev.Tool == "render_pdf" {
			result = ev.Result
		}
	}
	if result == nil || result.OK {
		t.Errorf("unknown tool result = %+v, want failed result", result)
	}

	found := false
	for _, msg := range provider.requests[1].Messages {
		if msg.Role == "tool" && msg.ToolCallID != nil && *msg.ToolCallID == "call_x" {
			found = true
		}
	}
	if !found {
		t.Error("no diagnostic tool message for the unknown tool")
	}
}
