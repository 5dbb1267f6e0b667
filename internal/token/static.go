package token

import "context"

// StaticSource returns a fixed token. An empty value behaves as "not found"
// so an unset --token flag falls through to the next source.
type StaticSource struct {
	Value string
}

// NewStaticSource creates a source that always yields value
func NewStaticSource(value string) *StaticSource {
	return &StaticSource{Value: value}
}

// Token implements Source
func (s *StaticSource) Token(_ context.Context) (Token, error) {
	if s.Value == "" {
		return Token{}, ErrTokenNotFound
	}
	return Token{Value: s.Value, Origin: "static"}, nil
}
