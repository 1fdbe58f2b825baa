// Package credentials manages the ordered pool of inference API tokens.
package credentials

import (
	"fmt"
	"os"
)

// Pool is an ordered, immutable list of bearer tokens for the inference API.
// The first token is always tried first on every call; the pool never
// reorders based on past failures.
type Pool struct {
	tokens []string
}

// NewPool creates a pool from an explicit token list.
func NewPool(tokens []string) (*Pool, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("credential pool must not be empty")
	}
	return &Pool{tokens: tokens}, nil
}

// PoolFromEnv loads tokens from HF_TOKEN_1, HF_TOKEN_2, ... stopping at the
// first gap in the sequence.
func PoolFromEnv() (*Pool, error) {
	var tokens []string
	for i := 1; ; i++ {
		token := os.Getenv(fmt.Sprintf("HF_TOKEN_%d", i))
		if token == "" {
			break
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no inference API tokens found (set HF_TOKEN_1, HF_TOKEN_2, ...)")
	}
	return &Pool{tokens: tokens}, nil
}

// Ordered returns the tokens in priority order.
func (p *Pool) Ordered() []string {
	out := make([]string, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Size returns the number of tokens in the pool.
func (p *Pool) Size() int {
	return len(p.tokens)
}
