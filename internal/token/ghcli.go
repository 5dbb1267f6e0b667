package token

import (
	"context"

	"github.com/cli/go-gh/v2/pkg/auth"
)

// GHCLISource reuses the token of an authenticated gh CLI for Host
type GHCLISource struct {
	Host   string
	lookup func(host string) (string, string)
}

// NewGHCLISource creates a source for host, e.g. "github.com"
func NewGHCLISource(host string) *GHCLISource {
	if host == "" {
		host = "github.com"
	}
	return &GHCLISource{Host: host, lookup: auth.TokenForHost}
}

// Token implements Source
func (g *GHCLISource) Token(_ context.Context) (Token, error) {
	value, source := g.lookup(g.Host)
	if value == "" {
		return Token{}, ErrTokenNotFound
	}
	return Token{Value: value, Origin: "gh:" + source}, nil
}
