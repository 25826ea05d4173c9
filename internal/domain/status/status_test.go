package status_test

import (
	"testing"

	"decksnap/slides-api/internal/domain/status"
)

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		status   status.Status
		expected bool
	}{
		{"pending is not terminal", status.StatusPending, false},
		{"generating is not terminal", status.StatusGenerating, false},
		{"finalizing is not terminal", status.StatusFinalizing, false},
		{"completed is terminal", status.StatusCompleted, true},
		{"exhausted is terminal", status.StatusExhausted, true},
		{"failed is terminal", status.StatusFailed, true},
		{"cancelled is terminal", status.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("Status.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsSuccessful(t *testing.T) {
	tests := []struct {
		name     string
		status   status.Status
		expected bool
	}{
		{"completed is successful", status.StatusCompleted, true},
		{"exhausted is successful (degraded)", status.StatusExhausted, true},
		{"failed is not successful", status.StatusFailed, false},
		{"cancelled is not successful", status.StatusCancelled, false},
		{"generating is not successful", status.StatusGenerating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsSuccessful(); got != tt.expected {
				t.Errorf("Status.IsSuccessful() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsActive(t *testing.T) {
	tests := []struct {
		name     string
		status   status.Status
		expected bool
	}{
		{"pending is active", status.StatusPending, true},
		{"generating is active", status.StatusGenerating, true},
		{"finalizing is active", status.StatusFinalizing, true},
		{"completed is not active", status.StatusCompleted, false},
		{"failed is not active", status.StatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsActive(); got != tt.expected {
				t.Errorf("Status.IsActive() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name  string
		from  status.Status
		to    status.Status
		canDo bool
	}{
		// Valid transitions from pending
		{"pending to generating", status.StatusPending, status.StatusGenerating, true},
		{"pending to failed", status.StatusPending, status.StatusFailed, true},
		{"pending to cancelled", status.StatusPending, status.StatusCancelled, true},
		{"pending to completed - invalid", status.StatusPending, status.StatusCompleted, false},

		// Valid transitions from generating
		{"generating to finalizing", status.StatusGenerating, status.StatusFinalizing, true},
		{"generating to failed", status.StatusGenerating, status.StatusFailed, true},
		{"generating to pending - invalid", status.StatusGenerating, status.StatusPending, false},
		{"generating to completed - invalid", status.StatusGenerating, status.StatusCompleted, false},

		// Valid transitions from finalizing
		{"finalizing to completed", status.StatusFinalizing, status.StatusCompleted, true},
		{"finalizing to exhausted", status.StatusFinalizing, status.StatusExhausted, true},
		{"finalizing to failed", status.StatusFinalizing, status.StatusFailed, true},

		// Terminal states have no valid transitions
		{"completed to anything - invalid", status.StatusCompleted, status.StatusGenerating, false},
		{"exhausted to anything - invalid", status.StatusExhausted, status.StatusGenerating, false},
		{"cancelled to anything - invalid", status.StatusCancelled, status.StatusGenerating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.canDo {
				t.Errorf("Status.CanTransitionTo() = %v, want %v", got, tt.canDo)
			}
		})
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	// Valid transition
	s := status.StatusPending
	newStatus, err := s.TransitionTo(status.StatusGenerating)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if newStatus != status.StatusGenerating {
		t.Errorf("Expected status to be generating, got %v", newStatus)
	}

	// Invalid transition
	s = status.StatusCompleted
	_, err = s.TransitionTo(status.StatusGenerating)
	if err != status.ErrInvalidTransition {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}
}

func TestErrorSeverity_IsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		severity status.ErrorSeverity
		expected bool
	}{
		{"retryable is retryable", status.ErrorSeverityRetryable, true},
		{"skippable is not retryable", status.ErrorSeveritySkippable, false},
		{"absorbed is not retryable", status.ErrorSeverityAbsorbed, false},
		{"fatal is not retryable", status.ErrorSeverityFatal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.IsRetryable(); got != tt.expected {
				t.Errorf("ErrorSeverity.IsRetryable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorSeverity_IsFatal(t *testing.T) {
	tests := []struct {
		name     string
		severity status.ErrorSeverity
		expected bool
	}{
		{"fatal is fatal", status.ErrorSeverityFatal, true},
		{"retryable is not fatal", status.ErrorSeverityRetryable, false},
		{"skippable is not fatal", status.ErrorSeveritySkippable, false},
		{"absorbed is not fatal", status.ErrorSeverityAbsorbed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.severity.IsFatal(); got != tt.expected {
				t.Errorf("ErrorSeverity.IsFatal() = %v, want %v", got, tt.expected)
			}
		})
	}
}
