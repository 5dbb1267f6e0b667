package token

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/NicabarNimble/go-devdir/internal/urlutils"
)

// CredentialsFileName is the git credential store file in the home directory
const CredentialsFileName = ".git-credentials"

// ErrMalformedCredentials indicates the credential store exists but its
// first line does not carry a token
var ErrMalformedCredentials = urlutils.ErrMalformedCredential

// FileSource reads the token from the first line of a git credential store
type FileSource struct {
	Path string
}

// NewFileSource creates a source for path. An empty path selects
// ~/.git-credentials.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// DefaultCredentialsPath returns ~/.git-credentials
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, CredentialsFileName), nil
}

// Token implements Source. A missing file yields ErrTokenNotFound.
func (f *FileSource) Token(_ context.Context) (Token, error) {
	path := f.Path
	if path == "" {
		var err error
		if path, err = DefaultCredentialsPath(); err != nil {
			return Token{}, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Token{}, ErrTokenNotFound
		}
		return Token{}, fmt.Errorf("failed to open credential store: %w", err)
	}
	defer file.Close()

	line, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && line == "" {
		return Token{}, fmt.Errorf("%s: %w: file is empty", path, ErrMalformedCredentials)
	}

	value, err := urlutils.ParseCredentialLine(line)
	if err != nil {
		return Token{}, fmt.Errorf("%s: %w", path, err)
	}

	return Token{Value: value, Origin: path}, nil
}
