// Package destination owns the lifecycle of the local directory that
// receives the clones.
//
// An absent destination is created without asking. An existing one is only
// replaced after the operator agrees, and the removal is deliberately
// non-recursive: a destination that still holds anything makes Prepare fail
// instead of deleting its contents.
package destination

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	deverrors "github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/logger"
)

// State of the destination path
type State int

const (
	Absent State = iota
	Present
	Created
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Created:
		return "created"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotDirectory indicates the destination path exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Manager prepares destination directories
type Manager struct {
	confirm Confirmer
	logger  *logger.Logger
	perm    fs.FileMode

	// remove is os.Remove; never a recursive variant
	remove func(name string) error
}

// NewManager creates a Manager that asks c before replacing a directory
func NewManager(c Confirmer, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		confirm: c,
		logger:  log,
		perm:    0o755,
		remove:  os.Remove,
	}
}

// Inspect reports whether path is Absent or Present
func Inspect(path string) (State, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return Present, nil
	case errors.Is(err, fs.ErrNotExist):
		return Absent, nil
	default:
		return Absent, &deverrors.DestinationError{Path: path, Action: "inspect", Err: err}
	}
}

// Prepare leaves an empty directory at path and returns Created. When path
// already exists and the operator declines to overwrite it, Prepare returns
// Present and ErrCancelled without touching the filesystem.
func (m *Manager) Prepare(path string) (State, error) {
	if path == "" {
		return Absent, &deverrors.DestinationError{Path: path, Action: "inspect", Err: errors.New("empty path")}
	}

	state, err := Inspect(path)
	if err != nil {
		return state, err
	}

	if state == Present {
		info, err := os.Stat(path)
		if err != nil {
			return state, &deverrors.DestinationError{Path: path, Action: "inspect", Err: err}
		}
		if !info.IsDir() {
			return state, &deverrors.DestinationError{Path: path, Action: "remove", Err: ErrNotDirectory}
		}

		overwrite, err := m.confirm.Confirm(fmt.Sprintf("Directory '%s' already exists! Overwrite?", path), true)
		if err != nil {
			return state, fmt.Errorf("overwrite confirmation: %w", err)
		}
		if !overwrite {
			m.logger.Info("keeping existing destination", "path", path)
			return state, deverrors.ErrCancelled
		}

		m.logger.Info("removing old destination directory", "path", path)
		if err := m.remove(path); err != nil {
			return state, &deverrors.DestinationError{Path: path, Action: "remove", Err: err}
		}
	}

	m.logger.Info("creating destination directory", "path", path)
	// one directory only; a missing parent is an error
	if err := os.Mkdir(path, m.perm); err != nil {
		return state, &deverrors.DestinationError{Path: path, Action: "create", Err: err}
	}

	return Created, nil
}
