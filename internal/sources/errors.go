// Package sources holds errors shared by the external content sources.
package sources

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited is returned when YouTube answers with HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnexpectedStatus is returned for any other non-200 answer.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformedResponse is returned when a response body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response")
)

// SourceError reports a failed fetch from one source.
type SourceError struct {
	Source     string
	StatusCode int
	Err        error
}

// Error implements error.
func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("source %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// StatusError builds a SourceError for a non-200 HTTP status.
func StatusError(source string, status int) *SourceError {
	err := ErrUnexpectedStatus
	if status == 429 {
		err = ErrRateLimited
	}
	return &SourceError{Source: source, StatusCode: status, Err: err}
}
