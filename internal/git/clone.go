package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/urlutils"
)

// CloneOptions contains configuration for repository cloning
type CloneOptions struct {
	SourceURL  string
	TargetPath string    // Local path of the new working copy
	Stdout     io.Writer // git's own output; os.Stdout when nil
	Stderr     io.Writer // os.Stderr when nil
}

// CloneRepository runs `git clone SourceURL TargetPath` and waits for it.
// A non-zero exit status is returned as an error.
func CloneRepository(ctx context.Context, opts CloneOptions) error {
	if opts.SourceURL == "" {
		return errors.New(errors.OpClone, fmt.Errorf("source URL must be specified"))
	}
	if opts.TargetPath == "" {
		return errors.New(errors.OpClone, fmt.Errorf("target path must be specified"))
	}

	select {
	case <-ctx.Done():
		return errors.New(errors.OpClone, fmt.Errorf("operation cancelled: %w", ctx.Err()))
	default:
	}

	sourceURL := opts.SourceURL
	if strings.HasPrefix(sourceURL, "git@") {
		return errors.New(errors.OpClone, fmt.Errorf("SSH URLs are not supported, please use HTTPS"))
	}

	// file:// sources are local fixtures and skip host validation
	if !strings.HasPrefix(sourceURL, "file://") {
		if err := urlutils.ValidateURL(sourceURL); err != nil {
			return errors.New(errors.OpClone, fmt.Errorf("invalid source URL: %w", err))
		}
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if err := runGitCommand(ctx, stdout, stderr, "clone", sourceURL, opts.TargetPath); err != nil {
		return errors.New(errors.OpClone, fmt.Errorf("failed to clone %s: %w", urlutils.SanitizeURL(sourceURL), err))
	}
	return nil
}

// runGitCommand is a variable so it can be mocked in tests
var runGitCommand = func(ctx context.Context, stdout, stderr io.Writer, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Never block on a credential prompt for a repository that vanished
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("git %s interrupted: %w", args[0], ctx.Err())
		}
		return fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return nil
}

// Cloner clones repositories one at a time with CloneRepository
type Cloner struct {
	Stdout io.Writer
	Stderr io.Writer
	// Timeout bounds each clone. Zero means no timeout.
	Timeout time.Duration
}

// Clone clones sourceURL into targetPath
func (c *Cloner) Clone(ctx context.Context, sourceURL, targetPath string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	return CloneRepository(ctx, CloneOptions{
		SourceURL:  sourceURL,
		TargetPath: targetPath,
		Stdout:     c.Stdout,
		Stderr:     c.Stderr,
	})
}
