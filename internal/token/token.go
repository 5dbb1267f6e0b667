// Package token resolves the access token used to query the repository
// catalog.
//
// Resolution Strategy
//
// A token is obtained from a chain of Sources, tried in order:
//
// 1. Static: an explicit value handed over by the caller (the --token flag).
//
// 2. Environment: the GIT_TOKEN_GITHUB variable. The value is either the
// raw token or a JSON document {"Value": "..."}.
//
// 3. Credential store: the first line of ~/.git-credentials, as written by
// `git config credential.helper store`.
//
// 4. gh CLI: the token an authenticated `gh auth login` stored for the
// API host.
//
// 5. Prompt: the operator types the token. Fails with
// ErrCredentialUnavailable when no input can be read.
//
// A Source that simply has nothing to offer returns ErrTokenNotFound and the
// chain moves on; any other error stops resolution. Tokens are never written
// or cached.
package token

import (
	"context"
	"errors"
	"time"

	deverrors "github.com/NicabarNimble/go-devdir/internal/errors"
)

// Common errors that may be returned by token operations
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrTokenExpired  = errors.New("token has expired")

	// ErrCredentialUnavailable is shared with the error taxonomy so callers
	// can match it without importing this package
	ErrCredentialUnavailable = deverrors.ErrCredentialUnavailable
)

// Token represents an authentication token with metadata
type Token struct {
	// Value is the actual token string
	Value string `json:"Value"`

	// ExpiresAt indicates when the token will expire
	// Zero value means the token does not expire
	ExpiresAt time.Time `json:"ExpiresAt"`

	// Origin names the Source that produced the token, for diagnostics
	Origin string `json:"-"`
}

// Source is the capability to obtain a token
type Source interface {
	// Token returns a token or ErrTokenNotFound when the source has none
	Token(ctx context.Context) (Token, error)
}

// IsExpired checks if a token has expired
func IsExpired(token Token) bool {
	if token.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(token.ExpiresAt)
}

// IsValid performs basic validation of a token
func IsValid(token Token) bool {
	return token.Value != ""
}
