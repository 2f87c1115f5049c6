package ports

import "tally/internal/domain"

// ProgressDisplay draws frames of fetch progress.
// It is only ever called from the single aggregator goroutine.
type ProgressDisplay interface {
	Draw(state *domain.ProgressState) error
	Finish(state *domain.ProgressState) error
}
