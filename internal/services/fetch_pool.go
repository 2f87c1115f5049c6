package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/domain"
	"tally/internal/logging"
	"tally/internal/ports"
)

// fetchAll clones every source concurrently, one goroutine per source, while
// a single aggregator goroutine renders their progress. It returns once every
// goroutine has finished. The first clone failure cancels the others.
func fetchAll(ctx context.Context, cloner ports.RepoCloner, display ports.ProgressDisplay, sources []domain.RemoteSource, runID string) ([]domain.FetchRecord, error) {
	ch := newProgressChannel()

	// Register every producer before anything runs so the channel can't
	// close while workers are still being spawned
	senders := make([]*progressSender, len(sources))
	uris := make([]string, len(sources))
	for i, src := range sources {
		senders[i] = ch.Sender()
		uris[i] = src.URI
	}

	records := make([]domain.FetchRecord, len(sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		sender := senders[i]
		g.Go(func() error {
			defer sender.Release()
			rec, err := fetchOne(gctx, cloner, src, sender)
			rec.RunID = runID
			records[i] = rec
			return err
		})
	}

	aggregator := newProgressAggregator(ch, display, uris)
	g.Go(func() error {
		aggregator.Run()
		return nil
	})

	err := g.Wait()
	return records, err
}

// fetchOne runs a single blocking clone and forwards its hook calls as
// progress events. The sender is the only state shared with other goroutines.
func fetchOne(ctx context.Context, cloner ports.RepoCloner, src domain.RemoteSource, sender *progressSender) (domain.FetchRecord, error) {
	rec := domain.FetchRecord{
		DerivedPath: src.DerivedPath,
		StartedAt:   time.Now(),
		URI:         src.URI,
	}

	hooks := ports.CloneHooks{
		Transfer: func(stats domain.TransferStats) {
			ev := domain.ProgressEvent{SourceURI: src.URI}
			if stats.IndexedDeltas > 0 {
				ev.Phase = domain.PhaseDeltaResolve
				ev.Current = stats.IndexedDeltas
				ev.Total = stats.TotalDeltas
			} else {
				ev.Phase = domain.PhaseFetch
				ev.Current = stats.ReceivedObjects
				ev.Total = stats.TotalObjects
			}
			sender.Send(ev)
		},
		Checkout: func(done, total int) {
			sender.Send(domain.ProgressEvent{
				Current:   done,
				Phase:     domain.PhaseCheckout,
				SourceURI: src.URI,
				Total:     total,
			})
		},
	}

	logging.Logger.Info("Fetching source", "uri", src.URI, "path", src.DerivedPath)
	err := cloner.Clone(ctx, src.URI, src.DerivedPath, hooks)
	rec.FinishedAt = time.Now()

	if err != nil {
		rec.Error = err.Error()
		rec.Status = domain.FetchStatusFailed
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			rec.Status = domain.FetchStatusCancelled
		}
		logging.Logger.Error("Fetch failed", "uri", src.URI, "status", rec.Status, "error", err)
		return rec, &domain.FetchError{Kind: domain.KindClone, URI: src.URI, Path: src.DerivedPath, Err: err}
	}

	rec.Status = domain.FetchStatusOK
	logging.Logger.Info("Fetch complete", "uri", src.URI, "duration", rec.Duration())
	return rec, nil
}
