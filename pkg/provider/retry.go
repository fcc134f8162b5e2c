package provider

import (
	"context"
	"errors"
	"time"
)

// Retry repeats a call with exponential backoff.
type Retry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
}

func NewRetry(maxRetries int, retryDelay time.Duration) *Retry {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
	}
}

// Execute runs fn until it succeeds, returns a non-retryable error, the
// retries are used up or ctx is done.
func (r *Retry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error
	delay := r.retryDelay

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxRetries || !isRetryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * r.backoffMultiplier)
	}

	return lastErr
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrEmptySeed), errors.Is(err, ErrNoEndpoint), errors.Is(err, ErrStatusFailed), errors.Is(err, ErrDecode):
		return false
	}
	return true
}
