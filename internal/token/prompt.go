package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/NicabarNimble/go-devdir/internal/prompt"
)

// SecretReader is the part of prompt.Prompter a PromptSource needs
type SecretReader interface {
	Secret(label string) (string, error)
}

// PromptSource asks the operator for the token
type PromptSource struct {
	Reader SecretReader
	Label  string
}

// NewPromptSource creates a source that asks "Token: " on r
func NewPromptSource(r SecretReader) *PromptSource {
	return &PromptSource{Reader: r, Label: "Token"}
}

// Token implements Source. The entered text is returned verbatim.
func (p *PromptSource) Token(_ context.Context) (Token, error) {
	value, err := p.Reader.Secret(p.Label)
	if err != nil {
		if errors.Is(err, prompt.ErrNotInteractive) {
			return Token{}, fmt.Errorf("%w: %v", ErrCredentialUnavailable, err)
		}
		return Token{}, err
	}
	return Token{Value: value, Origin: "prompt"}, nil
}
