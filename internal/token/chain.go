package token

import (
	"context"
	"errors"
)

// Chain tries each Source in order and returns the first token found
type Chain []Source

// NewChain creates a Chain from sources, skipping nil entries
func NewChain(sources ...Source) Chain {
	chain := make(Chain, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			chain = append(chain, s)
		}
	}
	return chain
}

// Token implements Source. Only ErrTokenNotFound moves on to the next
// source; any other error is returned as is.
func (c Chain) Token(ctx context.Context) (Token, error) {
	for _, source := range c {
		if err := ctx.Err(); err != nil {
			return Token{}, err
		}

		t, err := source.Token(ctx)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrTokenNotFound) {
			return Token{}, err
		}
	}
	return Token{}, ErrCredentialUnavailable
}
