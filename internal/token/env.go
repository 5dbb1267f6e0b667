package token

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// EnvPrefix is the prefix used for all token environment variables
	EnvPrefix = "GIT_TOKEN_"

	// DefaultEnvKey is the key read by NewEnvSource when none is given
	DefaultEnvKey = "github"
)

// EnvSource reads a token from a GIT_TOKEN_* environment variable.
// The value is either the bare token or a JSON document such as
//
//	export GIT_TOKEN_GITHUB='{"Value":"ghp_abc...","ExpiresAt":"2026-01-01T00:00:00Z"}'
type EnvSource struct {
	Key    string
	lookup func(string) (string, bool)
}

// NewEnvSource creates a source for the given key, e.g. "github"
func NewEnvSource(key string) *EnvSource {
	if key == "" {
		key = DefaultEnvKey
	}
	return &EnvSource{Key: key, lookup: os.LookupEnv}
}

// Token implements Source
func (e *EnvSource) Token(_ context.Context) (Token, error) {
	envKey := e.FormatEnvKey(e.Key)
	data, ok := e.lookup(envKey)
	if !ok || strings.TrimSpace(data) == "" {
		return Token{}, ErrTokenNotFound
	}

	data = strings.TrimSpace(data)
	if !strings.HasPrefix(data, "{") {
		return Token{Value: data, Origin: envKey}, nil
	}

	var token Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return Token{}, fmt.Errorf("failed to unmarshal %s: %w", envKey, err)
	}
	if !IsValid(token) {
		return Token{}, ErrTokenInvalid
	}
	if IsExpired(token) {
		return Token{}, ErrTokenExpired
	}

	token.Origin = envKey
	return token, nil
}

// FormatEnvKey converts a token key into an environment variable name
// This is exported to allow users to predict and verify environment variable names
func (e *EnvSource) FormatEnvKey(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToUpper(key))

	return EnvPrefix + sanitized
}
