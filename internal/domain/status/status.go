// Package status defines shared lifecycle types for generation runs.
package status

import "errors"

// Status represents the lifecycle status of a presentation generation run.
type Status string

const (
	// Non-terminal states
	StatusPending    Status = "pending"    // Created, not yet started
	StatusGenerating Status = "generating" // Agent loop iterating
	StatusFinalizing Status = "finalizing" // Loop done, committing result

	// Terminal states (no further transitions allowed)
	StatusCompleted Status = "completed" // Successfully finished
	StatusExhausted Status = "exhausted" // Iteration budget hit, partial result kept
	StatusFailed    Status = "failed"    // Unrecoverable error
	StatusCancelled Status = "cancelled" // User or system cancelled
)

// ErrInvalidTransition is returned when a status transition is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusExhausted ||
		s == StatusFailed || s == StatusCancelled
}

// IsSuccessful returns true if the run produced a usable document.
// Exhausted runs keep their partial slides and count as degraded success.
func (s Status) IsSuccessful() bool {
	return s == StatusCompleted || s == StatusExhausted
}

// IsActive returns true if the status indicates active processing.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusGenerating || s == StatusFinalizing
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ValidTransitions defines allowed status transitions.
var ValidTransitions = map[Status][]Status{
	StatusPending:    {StatusGenerating, StatusFailed, StatusCancelled},
	StatusGenerating: {StatusFinalizing, StatusFailed, StatusCancelled},
	StatusFinalizing: {StatusCompleted, StatusExhausted, StatusFailed},
	// Terminal states have no valid transitions
	StatusCompleted: {},
	StatusExhausted: {},
	StatusFailed:    {},
	StatusCancelled: {},
}

// CanTransitionTo checks if a transition from current status to target status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	validTargets, ok := ValidTransitions[s]
	if !ok {
		return false
	}
	for _, t := range validTargets {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo attempts to transition to the target status and returns error if invalid.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, ErrInvalidTransition
	}
	return target, nil
}

// ErrorSeverity indicates how a generation fault should be handled.
type ErrorSeverity string

const (
	ErrorSeverityRetryable ErrorSeverity = "retryable" // Retry with backoff
	ErrorSeveritySkippable ErrorSeverity = "skippable" // Skip the call, continue the run
	ErrorSeverityAbsorbed  ErrorSeverity = "absorbed"  // Drop silently, log only
	ErrorSeverityFatal     ErrorSeverity = "fatal"     // Fail the entire run
)

// String returns the string representation of the error severity.
func (e ErrorSeverity) String() string {
	return string(e)
}

// IsRetryable returns true if the error can be retried.
func (e ErrorSeverity) IsRetryable() bool {
	return e == ErrorSeverityRetryable
}

// IsFatal returns true if the error should fail the run.
func (e ErrorSeverity) IsFatal() bool {
	return e == ErrorSeverityFatal
}
