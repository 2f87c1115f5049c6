package git

import (
	"fmt"
	"regexp"
	"strings"

	"tally/internal/domain"
	"tally/internal/logging"
)

// remoteSourcePatterns match the hosted git reference forms tally fetches.
// A local path that happens to look like one of these is treated as remote.
var remoteSourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[^/\s]+/[^/\s]+`),                                          // git@github.com:owner/repo
	regexp.MustCompile(`^(ssh|git)://([^@/\s]+@)?[A-Za-z0-9.-]+(:\d+)?/[^/\s]+/[^/\s]+`),                           // ssh://git@host/owner/repo
	regexp.MustCompile(`^https?://(www\.)?(github\.com|gitlab\.com|bitbucket\.org|codeberg\.org)/[^/\s]+/[^/\s]+`), // hosted forges
	regexp.MustCompile(`^https?://[^\s]+\.git/?$`),                                                                 // any http(s) URL ending in .git
}

// isRemoteSource reports whether source is a remote repository reference
func isRemoteSource(source string) bool {
	if source == "" {
		return false
	}
	for _, pattern := range remoteSourcePatterns {
		if pattern.MatchString(source) {
			return true
		}
	}
	return false
}

// parseRepoSource parses a repository reference into owner and repo.
// Local paths are returned with IsRemote false and no owner/repo.
func parseRepoSource(source string) (*domain.RepoSource, error) {
	logging.Logger.Debug("Parsing repo source", "source", source)

	if source == "" {
		return nil, fmt.Errorf("empty source")
	}

	rs := &domain.RepoSource{
		IsRemote: isRemoteSource(source),
		Path:     source,
	}
	if !rs.IsRemote {
		return rs, nil
	}

	owner, repo := splitOwnerRepo(source)
	if owner == "" || repo == "" {
		logging.Logger.Warn("Could not extract owner/repo from URL", "url", source)
		return nil, fmt.Errorf("could not extract owner/repo from %s", source)
	}

	rs.Owner = owner
	rs.Repo = repo
	logging.Logger.Debug("Parsed remote repo", "owner", rs.Owner, "repo", rs.Repo)
	return rs, nil
}

// splitOwnerRepo takes the last two path segments of a reference.
// The repo segment loses a trailing .git; the owner segment loses any
// user@host: prefix so that SSH and HTTPS forms agree.
func splitOwnerRepo(source string) (string, string) {
	cleaned := strings.TrimRight(source, "/")
	parts := strings.Split(cleaned, "/")
	if len(parts) < 2 {
		return "", ""
	}

	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	owner := parts[len(parts)-2]
	if idx := strings.LastIndex(owner, ":"); idx >= 0 {
		owner = owner[idx+1:]
	}
	if idx := strings.LastIndex(owner, "@"); idx >= 0 {
		owner = owner[idx+1:]
	}

	return owner, repo
}
