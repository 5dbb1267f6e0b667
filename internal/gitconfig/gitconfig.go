// Package gitconfig reads the settings devdir borrows from the user's git
// configuration.
package gitconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// FileName is the global git configuration file in the home directory
const FileName = ".gitconfig"

// DefaultPath returns ~/.gitconfig
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// GitHubUser returns the github.user value of the git config at path.
// A missing file or key yields "".
func GitHubUser(path string) (string, error) {
	cfg, err := load(path)
	if err != nil || cfg == nil {
		return "", err
	}
	return cfg.Section("github").Key("user").String(), nil
}

func load(path string) (*ini.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat git config: %w", err)
	}

	// section and key names are case-insensitive in git; bare keys mean true
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:             true,
		AllowBooleanKeys:        true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git config %s: %w", path, err)
	}
	return cfg, nil
}
