package token

import "strings"

// Provider represents a Git provider type
type Provider string

const (
	ProviderGitHub Provider = "GITHUB"
	ProviderGitLab Provider = "GITLAB"
)

var githubPrefixes = []string{"ghp_", "gho_", "ghu_", "ghs_", "github_pat_"}

// DetectProvider attempts to determine the token provider from the token format
func DetectProvider(tokenValue string) Provider {
	for _, prefix := range githubPrefixes {
		if strings.HasPrefix(tokenValue, prefix) {
			return ProviderGitHub
		}
	}
	if strings.HasPrefix(tokenValue, "glpat-") {
		return ProviderGitLab
	}
	return ""
}
