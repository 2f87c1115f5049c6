package services

import (
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/domain"
	"tally/internal/logging"
	"tally/internal/ports"
)

// DerivePath returns <scratchRoot>/<repo>__<owner> for a parsed remote source
func DerivePath(scratchRoot string, rs *domain.RepoSource) string {
	return filepath.Join(scratchRoot, fmt.Sprintf("%s__%s", rs.Repo, rs.Owner))
}

// DeriveDestinations classifies inputs, derives one scratch directory per
// distinct destination and creates each directory.
//
// Inputs that normalize to an already-derived path are dropped (the first
// URI wins). When no input is a remote source, ErrNothingToFetch is returned
// and nothing is created.
func DeriveDestinations(inputs []string, scratchRoot string, parser ports.RemoteSourceParser) ([]domain.RemoteSource, error) {
	var sources []domain.RemoteSource
	seen := make(map[string]string)

	for _, input := range inputs {
		if !parser.IsRemoteSource(input) {
			continue
		}

		rs, err := parser.ParseRepoSource(input)
		if err != nil {
			return nil, &domain.FetchError{Kind: domain.KindDestination, URI: input, Err: err}
		}

		path := DerivePath(scratchRoot, rs)
		if first, dup := seen[path]; dup {
			logging.Logger.Warn("Skipping duplicate remote source", "uri", input, "same_as", first, "path", path)
			continue
		}
		seen[path] = input

		sources = append(sources, domain.RemoteSource{DerivedPath: path, URI: input})
	}

	if len(sources) == 0 {
		return nil, domain.ErrNothingToFetch
	}

	for _, src := range sources {
		if err := os.MkdirAll(src.DerivedPath, 0755); err != nil {
			logging.Logger.Error("Failed to create destination", "path", src.DerivedPath, "error", err)
			return nil, &domain.FetchError{Kind: domain.KindDestination, URI: src.URI, Path: src.DerivedPath, Err: err}
		}
		logging.Logger.Debug("Destination created", "uri", src.URI, "path", src.DerivedPath)
	}

	return sources, nil
}
