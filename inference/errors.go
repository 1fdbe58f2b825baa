package inference

import (
	"errors"
	"fmt"
)

// ErrAllCredentialsExhausted is returned when every token in the pool failed
// with a quota error.
var ErrAllCredentialsExhausted = errors.New("all inference API tokens are exhausted")

// QuotaError indicates a per-token quota or rate limit failure (HTTP 402 or
// 429). The failover executor recovers from it by advancing to the next
// token.
type QuotaError struct {
	StatusCode int
	Body       string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("inference API quota error [%d]: %s", e.StatusCode, e.Body)
}

// UpstreamError indicates a non-quota failure from the inference endpoint.
// Switching tokens does not recover it.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference API error [%d]: %s", e.StatusCode, e.Body)
}
