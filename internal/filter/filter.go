// Package filter decides which repositories are excluded from a run.
package filter

import (
	"sort"
	"strings"

	"github.com/NicabarNimble/go-devdir/internal/github"
)

// DefaultSkipList is used when no skip list is configured
const DefaultSkipList = "awesome-config,nvim-config,dotfiles"

// SkipSet is a set of repository names to exclude. Matching is exact and
// case-sensitive; no whitespace is trimmed.
type SkipSet map[string]struct{}

// Parse splits a comma-delimited list into a SkipSet
func Parse(list string) SkipSet {
	set := make(SkipSet)
	for _, name := range strings.Split(list, ",") {
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is excluded
func (s SkipSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ShouldInclude reports whether a repository with this name is cloned
func (s SkipSet) ShouldInclude(name string) bool {
	return !s.Contains(name)
}

// Names returns the set members in sorted order, without the empty name
func (s SkipSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ShouldInclude returns false iff record's name is a member of skip
func ShouldInclude(record github.RepositoryRecord, skip SkipSet) bool {
	return skip.ShouldInclude(record.Name)
}
