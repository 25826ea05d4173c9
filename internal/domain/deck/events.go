package deck

import "decksnap/slides-api/internal/domain/slide"

// EventType identifies one progress event emitted during generation.
type EventType string

const (
	EventThinking   EventType = "thinking"
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventComplete   EventType = "complete"
	EventError      EventType = "error"
)

// Event is a single progress message from the generation loop. A run emits
// zero or more thinking and tool events followed by exactly one terminal
// event, either complete or error.
type Event struct {
	Type      EventType     `json:"type"`
	Iteration int           `json:"iteration,omitempty"`
	Message   string        `json:"message,omitempty"`
	Tool      string        `json:"tool,omitempty"`
	CallID    string        `json:"call_id,omitempty"`
	Slide     *slide.Slide  `json:"slide,omitempty"`
	Result    *ToolResult   `json:"result,omitempty"`
	Document  *Document     `json:"presentation,omitempty"`
	Error     *ErrorDetails `json:"error,omitempty"`
}

// ToolResult reports the outcome of one executed tool call.
type ToolResult struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Sink receives events in emission order. Implementations must not block
// the loop indefinitely.
type Sink func(Event)

// Emitter guards a Sink with the terminal-once rule: after a complete or
// error event has been emitted, every further event is dropped. A nil sink
// discards everything, which lets the blocking Generate path share the
// streaming engine.
type Emitter struct {
	sink     Sink
	terminal bool
}

func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

func (e *Emitter) emit(ev Event) {
	if e.terminal || e.sink == nil {
		return
	}
	e.sink(ev)
}

func (e *Emitter) Thinking(iteration int, message string) {
	e.emit(Event{Type: EventThinking, Iteration: iteration, Message: message})
}

func (e *Emitter) ToolCall(iteration int, tool, callID string, s *slide.Slide) {
	e.emit(Event{Type: EventToolCall, Iteration: iteration, Tool: tool, CallID: callID, Slide: s})
}

func (e *Emitter) ToolResult(iteration int, tool, callID string, result ToolResult) {
	e.emit(Event{Type: EventToolResult, Iteration: iteration, Tool: tool, CallID: callID, Result: &result})
}

func (e *Emitter) Complete(doc *Document) {
	if e.terminal {
		return
	}
	e.emit(Event{Type: EventComplete, Document: doc})
	e.terminal = true
}

func (e *Emitter) Error(details ErrorDetails) {
	if e.terminal {
		return
	}
	e.emit(Event{Type: EventError, Error: &details})
	e.terminal = true
}
