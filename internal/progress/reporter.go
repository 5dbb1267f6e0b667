// Package progress reports a bulk clone to the operator.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/github"
)

const rule = "-----------------------------------"

// Plan is what a run is about to do, shown before the operator confirms
type Plan struct {
	Account     string
	Destination string
	SkipList    []string
	TotalCount  int
	Returned    int
	Incomplete  bool
}

// Summary is the outcome of the clone loop
type Summary struct {
	Cloned   []string
	Skipped  []string
	Failures []*errors.CloneError
}

// Failed reports whether any repository failed to clone
func (s *Summary) Failed() bool {
	return len(s.Failures) > 0
}

// Reporter receives the events of a run
type Reporter interface {
	Plan(p Plan)
	Repository(ordinal, total int, r github.RepositoryRecord)
	CloneResult(name string, err error)
	Finish(s *Summary)
}

// ConsoleReporter writes a human readable report
type ConsoleReporter struct {
	out     io.Writer
	op      *Operation
	ordinal int
	total   int

	label  lipgloss.Style
	value  lipgloss.Style
	branch lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
}

// NewConsoleReporter creates a reporter writing to out. Colors are only
// emitted when out is a terminal.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out:    out,
		label:  r.NewStyle().Bold(true),
		value:  r.NewStyle().Foreground(lipgloss.Color("11")),
		branch: r.NewStyle().Foreground(lipgloss.Color("13")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		ok:     r.NewStyle().Foreground(lipgloss.Color("10")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (c *ConsoleReporter) field(name string, v any) {
	fmt.Fprintf(c.out, "%s: %s\n", c.label.Render(name), c.value.Render(fmt.Sprint(v)))
}

// Plan implements Reporter
func (c *ConsoleReporter) Plan(p Plan) {
	fmt.Fprintln(c.out, c.muted.Render(rule))
	c.field("Username", p.Account)
	c.field("Destination", p.Destination)
	c.field("Skip list", "["+strings.Join(p.SkipList, ", ")+"]")
	c.field("Total count", p.TotalCount)
	c.field("Items", p.Returned)
	c.field("Incomplete results", p.Incomplete)
	fmt.Fprintln(c.out, c.muted.Render(rule))
	fmt.Fprintln(c.out)

	c.op = Start("clone")
}

// Repository implements Reporter
func (c *ConsoleReporter) Repository(ordinal, total int, r github.RepositoryRecord) {
	fmt.Fprintf(c.out, "%s (%s) [%s/%s]\n",
		c.value.Render(r.Name),
		c.branch.Render(r.DefaultBranch),
		c.value.Render(fmt.Sprint(ordinal)),
		c.value.Render(fmt.Sprint(total)))
	c.field("Description", r.DescriptionOr("-"))
	c.field("Language", r.LanguageOr("-"))
	c.field("Size", humanize.IBytes(r.SizeBytes()))
	c.field("Fork?", r.Fork)
	c.field("Private?", r.Private)
	fmt.Fprintln(c.out, "--------------- Cloning Repo ---------------")

	c.ordinal, c.total = ordinal, total
}

// CloneResult implements Reporter
func (c *ConsoleReporter) CloneResult(name string, err error) {
	if err != nil {
		fmt.Fprintf(c.out, "%s %s: %v\n", c.fail.Render("FAIL"), name, err)
	} else {
		fmt.Fprintf(c.out, "%s %s\n", c.ok.Render("OK"), name)
	}

	if c.op != nil {
		c.op.Update(int64(c.ordinal), int64(c.total))
		if remaining, ok := c.op.Remaining(); ok && remaining > 0 {
			fmt.Fprintln(c.out, c.muted.Render(fmt.Sprintf("ETA %s", remaining)))
		}
	}
	fmt.Fprintln(c.out, c.muted.Render(rule))
	fmt.Fprintln(c.out)
}

// Finish implements Reporter
func (c *ConsoleReporter) Finish(s *Summary) {
	var took time.Duration
	if c.op != nil {
		took = c.op.Elapsed().Round(time.Second)
	}

	fmt.Fprintf(c.out, "%s: %s cloned, %s skipped, %s failed (took %v)\n",
		c.label.Render("Done"),
		c.ok.Render(fmt.Sprint(len(s.Cloned))),
		c.value.Render(fmt.Sprint(len(s.Skipped))),
		c.fail.Render(fmt.Sprint(len(s.Failures))),
		took)

	for _, f := range s.Failures {
		fmt.Fprintf(c.out, "  %s %s: %v\n", c.fail.Render("-"), f.Name, f.Err)
	}
}
