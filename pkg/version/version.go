package version

import "strings"

// Set at build time through -ldflags.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns the version with a short commit suffix when one is known.
func Summary() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	commit := strings.TrimSpace(CommitHash)
	if commit == "" || commit == "unknown" {
		return v
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return v + "+" + commit
}

// UserAgent is sent with every GitHub API request.
func UserAgent() string {
	return "prscope/" + Summary()
}
