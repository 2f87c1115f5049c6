package ports

import (
	"context"

	"tally/internal/domain"
)

// StatsEngine counts per-language statistics for a set of local paths
type StatsEngine interface {
	Count(ctx context.Context, paths []string) (domain.Languages, error)
}
