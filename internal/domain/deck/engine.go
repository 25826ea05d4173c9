package deck

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
	"decksnap/slides-api/internal/domain/tool"
)

// DefaultMaxIterations bounds the agent loop. Each iteration is one chat
// completion round trip; a well behaved run finishes well under the cap.
const DefaultMaxIterations = 25

const defaultTemperature = 0.7

// Engine drives the tool-calling conversation that assembles a Document.
// It owns slide ordering and event emission; persistence and the terminal
// complete/error events belong to the caller.
type Engine struct {
	gateway       *llm.Gateway
	images        ImageResolver
	maxIterations int
	defaultCount  int
	temperature   float64
	log           zerolog.Logger
}

func NewEngine(gateway *llm.Gateway, images ImageResolver, log zerolog.Logger) *Engine {
	return &Engine{
		gateway:       gateway,
		images:        images,
		maxIterations: DefaultMaxIterations,
		defaultCount:  DefaultSlideCount,
		temperature:   defaultTemperature,
		log:           log.With().Str("component", "deck_engine").Logger(),
	}
}

// WithMaxIterations overrides the iteration cap, mainly for tests.
func (e *Engine) WithMaxIterations(n int) *Engine {
	if n > 0 {
		e.maxIterations = n
	}
	return e
}

// WithDefaultSlideCount overrides the slide count used when a run does not
// request one.
func (e *Engine) WithDefaultSlideCount(n int) *Engine {
	if n > 0 {
		e.defaultCount = n
	}
	return e
}

// RunParams carries one run's inputs. Doc must already hold its identity
// (ID, PublicID, Theme); the engine fills Slides, Title and Usage.
type RunParams struct {
	Doc              *Document
	SlideCount       int
	ThemeContext     string
	TemplateGuidance string
	Store            SlideSink
	Emitter          *Emitter
}

// Run executes the agent loop until the agent finishes, the iteration
// budget runs out, or a fatal fault occurs. The returned status is
// StatusCompleted or StatusExhausted on success paths; a non-nil error
// means the run failed and the document state is partial.
func (e *Engine) Run(ctx context.Context, params RunParams) (status.Status, error) {
	doc := params.Doc
	emitter := params.Emitter
	if emitter == nil {
		emitter = NewEmitter(nil)
	}
	slideCount := params.SlideCount
	if slideCount <= 0 {
		slideCount = e.defaultCount
	}

	acc := newBuilder()
	usage := &llm.Usage{}
	tools := tool.Catalog()
	messages := []llm.ChatMessage{
		{Role: "system", Content: tool.SystemPrompt(slideCount, params.ThemeContext, params.TemplateGuidance)},
		{Role: "user", Content: userPrompt(doc.SourceText, slideCount)},
	}

	finished := false
	for iteration := 1; iteration <= e.maxIterations && !finished; iteration++ {
		// Announce progress before the round trip so streaming consumers
		// are not silent while the completion is in flight.
		emitter.Thinking(iteration, thinkingMessage(acc.count(), slideCount))

		turn, err := e.gateway.CompleteWithTools(ctx, messages, tools, e.temperature)
		if err != nil {
			return status.StatusFailed, fmt.Errorf("iteration %d: %w", iteration, err)
		}
		if turn.Usage != nil {
			usage.Add(turn.Usage)
		}

		if len(turn.ToolCalls) == 0 {
			// The agent stopped calling tools: treat as an implicit finish.
			e.log.Debug().Int("iteration", iteration).Msg("no tool calls, finishing")
			finished = true
			break
		}

		messages = append(messages, turn.Message)

		for _, raw := range turn.ToolCalls {
			call, err := tool.ParseCall(raw)
			if err != nil {
				e.log.Warn().Err(err).Str("tool", raw.Function.Name).
					Str("severity", status.ErrorSeveritySkippable.String()).Msg("skipping unparseable tool call")
				messages = append(messages, toolMessage(raw.ID, fmt.Sprintf("error: invalid arguments: %v", err)))
				continue
			}

			switch call.Name {
			case tool.NameAddSlide:
				stamped, err := e.addSlide(ctx, iteration, doc, acc, call, params.Store, emitter)
				if err != nil {
					return status.StatusFailed, err
				}
				if stamped == nil {
					continue
				}
				messages = append(messages, toolMessage(call.ID,
					fmt.Sprintf("added slide %d (%s), %d of %d done", stamped.Order, stamped.Type, acc.count(), slideCount)))

			case tool.NameFinishPresentation:
				if title, ok := call.Arguments["title"].(string); ok && title != "" {
					doc.Title = title
				}
				emitter.ToolCall(iteration, call.Name, call.ID, nil)
				emitter.ToolResult(iteration, call.Name, call.ID, ToolResult{OK: true, Detail: "presentation finished"})
				finished = true

			default:
				e.log.Warn().Str("tool", call.Name).Msg("unknown tool requested")
				emitter.ToolCall(iteration, call.Name, call.ID, nil)
				emitter.ToolResult(iteration, call.Name, call.ID, ToolResult{OK: false, Detail: "unknown tool"})
				messages = append(messages, toolMessage(call.ID, fmt.Sprintf("error: unknown tool %q", call.Name)))
			}

			if finished {
				// Remaining calls in this batch are discarded.
				break
			}
		}
	}

	doc.Slides = acc.slides
	doc.Usage = usage

	if finished {
		return status.StatusCompleted, nil
	}
	e.log.Warn().Int("slides", acc.count()).Int("max_iterations", e.maxIterations).
		Msg("iteration budget exhausted before finish")
	return status.StatusExhausted, nil
}

// addSlide executes one add_slide call. A nil slide with nil error means the
// call had bad arguments and was skipped; the conversation already carries
// the diagnostic. A non-nil error is fatal (persistence fault).
func (e *Engine) addSlide(ctx context.Context, iteration int, doc *Document, acc *builder, call tool.Call, store SlideSink, emitter *Emitter) (*slide.Slide, error) {
	s, err := slide.FromArgs(call.Arguments)
	if err != nil {
		e.log.Warn().Err(err).Str("severity", status.ErrorSeveritySkippable.String()).Msg("skipping invalid add_slide call")
		emitter.ToolCall(iteration, call.Name, call.ID, nil)
		emitter.ToolResult(iteration, call.Name, call.ID, ToolResult{OK: false, Detail: err.Error()})
		return nil, nil
	}

	if s.ImageQuery != nil {
		if img := e.images.SearchImage(ctx, *s.ImageQuery); img != nil {
			s.Image = img
		}
	}

	stamped := acc.append(*s)
	emitter.ToolCall(iteration, call.Name, call.ID, &stamped)

	if store != nil {
		if err := store.AppendSlide(ctx, doc.ID, stamped); err != nil {
			return nil, fmt.Errorf("persist slide %d: %w", stamped.Order, err)
		}
	}
	doc.Slides = acc.slides

	emitter.ToolResult(iteration, call.Name, call.ID, ToolResult{OK: true, Detail: fmt.Sprintf("slide %d added", stamped.Order)})
	return &stamped, nil
}

func userPrompt(sourceText string, slideCount int) string {
	return fmt.Sprintf("Create a %d-slide presentation from the following source material:\n\n%s", slideCount, sourceText)
}

func thinkingMessage(done, total int) string {
	if done == 0 {
		return "Analyzing the source material and planning the presentation"
	}
	return fmt.Sprintf("Composing the next slide (%d of %d done)", done, total)
}

func toolMessage(callID, content string) llm.ChatMessage {
	return llm.ChatMessage{Role: "tool", ToolCallID: &callID, Content: content}
}
