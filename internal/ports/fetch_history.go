package ports

import (
	"context"

	"tally/internal/domain"
)

// FetchHistory persists fetch outcomes for later inspection
type FetchHistory interface {
	Close() error
	Recent(ctx context.Context, limit int) ([]domain.FetchRecord, error)
	Record(ctx context.Context, records []domain.FetchRecord) error
}
