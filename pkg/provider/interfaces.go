// Package provider fetches raw keyword suggestions from an upstream
// keyword-data API. Its output feeds the longtail extractor unchanged.
package provider

import (
	"context"
	"errors"
	"fmt"

	"keyword-go/pkg/coerce"
)

// CandidateProvider returns raw candidate records for a seed keyword.
type CandidateProvider interface {
	Suggest(ctx context.Context, seed string) ([]coerce.Record, error)
}

var (
	ErrNoEndpoint   = errors.New("no provider endpoint configured")
	ErrEmptySeed    = errors.New("seed keyword is empty")
	ErrEmptyBody    = errors.New("empty response body from provider")
	ErrStatusFailed = errors.New("provider returned non-success status")
	ErrDecode       = errors.New("failed to decode provider response")
)

// StatusError is returned for non-200 HTTP responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool {
	return e.Code == 429 || e.Code >= 500
}
