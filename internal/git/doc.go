// Package git invokes the git command line for repository materialization.
//
// Cloning is delegated to the external `git` binary rather than
// reimplemented. Each call is a blocking child process; its output is
// streamed to the configured writers and a non-zero exit status comes back
// as an error wrapped in an OperationError with Op "clone".
//
// Example Usage:
//
//	cloner := &git.Cloner{Stdout: os.Stdout, Stderr: os.Stderr}
//	if err := cloner.Clone(ctx, "https://github.com/alice/dotfiles", "Development/dotfiles"); err != nil {
//	    log.Printf("clone failed: %v", err)
//	}
//
// Credentials:
//
// No token is embedded in clone URLs. Private repositories rely on the git
// credential helper that the operator already configured, and
// GIT_TERMINAL_PROMPT is disabled so a missing repository fails instead of
// waiting for input.
//
// Thread Safety:
//
// Git operations are not guaranteed to be thread-safe.
// Callers should ensure proper synchronization when operating
// on the same repository from multiple goroutines.
package git
