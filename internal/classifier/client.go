package classifier

import (
	"context"
	"errors"
	"fmt"
)

// ErrUpstream indicates the classification service returned a failure or a
// malformed body. Enrichment surfaces it directly: there is no silent
// fallback, since unclassified content can never be recommended.
var ErrUpstream = errors.New("classification service failure")

// Result contains the structured output of a classification run.
type Result struct {
	Summary  string
	Keywords []string
	Category string
}

// Classifier defines the interface for content classification providers.
type Classifier interface {
	Classify(ctx context.Context, contentType, originalContent string) (*Result, error)
	Name() string
}

// StatusError wraps a non-2xx response from the classification service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("classification service returned HTTP %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}
