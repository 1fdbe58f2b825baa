package inference

import (
	"context"
	"errors"
	"log"

	"atlas/credentials"
)

// Caller issues a single completion request with one token.
type Caller interface {
	Complete(ctx context.Context, modelID, systemPrompt, userPrompt string, maxTokens int, token string) (string, error)
}

// Executor wraps a Caller with sequential token failover. Tokens are tried
// strictly in pool order; a quota error advances to the next token, any
// other error aborts immediately.
type Executor struct {
	caller Caller
	pool   *credentials.Pool
}

// NewExecutor creates a failover executor over the given pool.
func NewExecutor(caller Caller, pool *credentials.Pool) *Executor {
	return &Executor{caller: caller, pool: pool}
}

// Complete runs one completion with token failover.
func (e *Executor) Complete(ctx context.Context, modelID, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	for i, token := range e.pool.Ordered() {
		text, err := e.caller.Complete(ctx, modelID, systemPrompt, userPrompt, maxTokens, token)
		if err == nil {
			return text, nil
		}

		var quotaErr *QuotaError
		if errors.As(err, &quotaErr) {
			log.Printf("WARN: token #%d exhausted [%d], trying next token", i+1, quotaErr.StatusCode)
			continue
		}

		// Non-quota failures are request- or model-level; another token
		// would not help.
		return "", err
	}

	return "", ErrAllCredentialsExhausted
}
