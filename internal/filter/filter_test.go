package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NicabarNimble/go-devdir/internal/github"
)

func TestShouldInclude(t *testing.T) {
	tests := []struct {
		name     string
		skipList string
		repo     string
		want     bool
	}{
		{name: "listed name is skipped", skipList: "a,b,c", repo: "b", want: false},
		{name: "unlisted name is included", skipList: "a,b,c", repo: "d", want: true},
		{name: "match is case-sensitive", skipList: "Dotfiles", repo: "dotfiles", want: true},
		{name: "whitespace is not trimmed", skipList: "a, b", repo: "b", want: true},
		{name: "whitespace entry matches literally", skipList: "a, b", repo: " b", want: false},
		{name: "prefix is not a match", skipList: "nvim", repo: "nvim-config", want: true},
		{name: "empty list skips nothing real", skipList: "", repo: "a", want: true},
		{name: "duplicates are harmless", skipList: "a,a", repo: "a", want: false},
		{name: "default list", skipList: DefaultSkipList, repo: "nvim-config", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := github.RepositoryRecord{Name: tt.repo}
			assert.Equal(t, tt.want, ShouldInclude(record, Parse(tt.skipList)))
		})
	}
}

// ShouldInclude agrees with membership in the comma-split list for every
// combination of a small alphabet of names.
func TestShouldIncludeMatchesSplit(t *testing.T) {
	names := []string{"a", "A", "b", "a-b", "", " a"}
	lists := []string{"", "a", "A,b", "a-b,a", " a,b", "a,,b"}

	for _, list := range lists {
		split := strings.Split(list, ",")
		set := Parse(list)
		for _, name := range names {
			member := false
			for _, s := range split {
				if s == name {
					member = true
				}
			}
			assert.Equal(t, !member, set.ShouldInclude(name), "list=%q name=%q", list, name)
		}
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"awesome-config", "dotfiles", "nvim-config"}, Parse(DefaultSkipList).Names())
	assert.Empty(t, Parse("").Names())
}
