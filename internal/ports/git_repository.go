package ports

import (
	"context"

	"tally/internal/domain"
)

// RemoteSourceParser classifies and parses repository references
type RemoteSourceParser interface {
	IsRemoteSource(source string) bool
	ParseRepoSource(source string) (*domain.RepoSource, error)
}

// CloneHooks receives progress while a clone is running.
// Hooks are invoked synchronously from the goroutine that called Clone.
// A nil hook is skipped.
type CloneHooks struct {
	Checkout func(done, total int)
	Transfer func(stats domain.TransferStats)
}

// RepoCloner performs a blocking clone-with-checkout into dest
type RepoCloner interface {
	Clone(ctx context.Context, uri, dest string, hooks CloneHooks) error
}

// GitRepository is the composite interface
type GitRepository interface {
	RemoteSourceParser
	RepoCloner
}
