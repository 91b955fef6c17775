// Package provider defines the upstream completion provider contract and the
// fixed prompt this service sends with every request.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrUpstreamUnavailable is the sentinel for every failure to obtain a
// readable stream from the provider: transport errors, non-2xx responses
// and responses without a body.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// Provider opens streaming completions against a single LLM provider.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// Model returns the model name sent upstream
	Model() string

	// OpenStream sends the prompt upstream with incremental delivery enabled
	// and returns the raw event-stream body. The caller must close it.
	// The request is bound to ctx; cancelling ctx aborts the stream.
	OpenStream(ctx context.Context, prompt string) (io.ReadCloser, error)
}

// UpstreamError describes why the provider stream could not be opened.
type UpstreamError struct {
	// StatusCode is 0 when the request never got a response.
	StatusCode int
	// Body holds a truncated excerpt of the error response, for logging.
	Body string
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Unwrap lets errors.Is match both ErrUpstreamUnavailable and the cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamUnavailable}
	}
	return []error{ErrUpstreamUnavailable, e.Err}
}
