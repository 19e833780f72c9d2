// Package analysis explains the civics vocabulary in a question by asking
// an LLM, caching the answers and falling back to a small built-in
// dictionary when the model cannot be reached.
package analysis

import (
	"context"
	"fmt"
)

// Term is one explained word or phrase.
type Term struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
	Translation string `json:"translation,omitempty"`
}

// Analyzer finds and explains difficult terms in a question.
// Implementations may call an LLM or return canned results (for tests).
type Analyzer interface {
	Analyze(ctx context.Context, text string, options []string, language string) ([]Term, error)
}

// Error is returned when analysis fails so the caller can distinguish
// between "model returned something unusable" and "model was unreachable."
type Error struct {
	Reason  string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("analysis failed: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
