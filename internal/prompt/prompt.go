// Package prompt asks the operator questions on a terminal.
//
// Every interactive decision of a run (account name, token, the
// continue checkpoint and the overwrite question) goes through the
// Prompter interface so tests can script the answers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when no operator input can be read,
// e.g. stdin is closed or redirected from an exhausted source
var ErrNotInteractive = errors.New("interactive input is not available")

// Prompter collects operator input
type Prompter interface {
	// Confirm asks a yes/no question. An empty answer selects def.
	Confirm(question string, def bool) (bool, error)
	// Input asks for a line of text and returns it without the line ending
	Input(label string) (string, error)
	// Secret asks for a line of text without echoing it when possible
	Secret(label string) (string, error)
}

// Terminal implements Prompter over a reader/writer pair. When the reader
// is a terminal, Secret disables echo.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewTerminal creates a Terminal reading from in and writing prompts to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Terminal{
		in:           bufio.NewReader(in),
		out:          out,
		fd:           fd,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// Stdio returns a Terminal bound to the process stdin with prompts on stderr
func Stdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stderr)
}

// Interactive reports whether the input side is an attached terminal
func (t *Terminal) Interactive() bool {
	return t.fd >= 0 && t.isTerminal(t.fd)
}

// Confirm implements Prompter
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(t.out, "%s [%s]: ", question, hint)

	answer, err := t.readLine()
	if err != nil {
		return false, err
	}
	return ParseAnswer(answer, def), nil
}

// Input implements Prompter
func (t *Terminal) Input(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	return t.readLine()
}

// Secret implements Prompter
func (t *Terminal) Secret(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)

	if !t.Interactive() {
		return t.readLine()
	}

	b, err := t.readPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInteractive, err)
	}
	return string(b), nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNotInteractive
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ParseAnswer interprets a yes/no answer. Anything other than y/yes
// (case-insensitive) is a no; an empty answer selects def.
func ParseAnswer(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// AssumeYes wraps a Prompter so that every Confirm is answered with yes
// without asking. Input and Secret still reach the wrapped Prompter.
type AssumeYes struct {
	Prompter
}

// Confirm implements Prompter
func (AssumeYes) Confirm(string, bool) (bool, error) {
	return true, nil
}
