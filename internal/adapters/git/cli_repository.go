package git

import (
	"context"

	"tally/internal/domain"
	"tally/internal/ports"
)

// CLIRepository implements ports.GitRepository using the local git binary
type CLIRepository struct{}

// Verify interface compliance at compile time
var _ ports.GitRepository = (*CLIRepository)(nil)

// NewCLIRepository creates a new CLIRepository
func NewCLIRepository() *CLIRepository {
	return &CLIRepository{}
}

// IsRemoteSource implements RemoteSourceParser.IsRemoteSource
func (r *CLIRepository) IsRemoteSource(source string) bool {
	return isRemoteSource(source)
}

// ParseRepoSource implements RemoteSourceParser.ParseRepoSource
func (r *CLIRepository) ParseRepoSource(source string) (*domain.RepoSource, error) {
	return parseRepoSource(source)
}

// Clone implements RepoCloner.Clone
func (r *CLIRepository) Clone(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
	return cloneRepository(ctx, uri, dest, hooks)
}
