package tool

import (
	"encoding/json"

	"decksnap/slides-api/internal/domain/llm"
)

// Call encapsulates one tool call requested by the LLM, with its raw
// arguments parsed into a generic map. Typed per-tool payloads are built
// by the callers that execute the call.
type Call struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ParseCall converts an LLM provided tool call into the domain Call struct.
// Malformed argument JSON surfaces as an error so callers can skip the
// individual call without aborting the run.
func ParseCall(call llm.ToolCall) (Call, error) {
	var args map[string]interface{}
	if len(call.Function.Arguments) > 0 {
		if err := json.Unmarshal(call.Function.Arguments, &args); err != nil {
			return Call{}, err
		}
	}
	return Call{
		ID:        call.ID,
		Name:      call.Function.Name,
		Arguments: args,
	}, nil
}
