package services

import (
	"tally/internal/domain"
	"tally/internal/logging"
	"tally/internal/ports"
)

// progressAggregator is the single consumer of a progressChannel. It owns the
// ProgressState and redraws the display after every accepted event.
type progressAggregator struct {
	ch      *progressChannel
	display ports.ProgressDisplay
	state   *domain.ProgressState
}

func newProgressAggregator(ch *progressChannel, display ports.ProgressDisplay, uris []string) *progressAggregator {
	return &progressAggregator{
		ch:      ch,
		display: display,
		state:   domain.NewProgressState(uris),
	}
}

// Run consumes events until the channel closes, then draws one final frame.
// Display failures are logged; the channel is always drained.
func (a *progressAggregator) Run() *domain.ProgressState {
	if a.display != nil {
		if err := a.display.Draw(a.state); err != nil {
			logging.Logger.Warn("Failed to draw progress", "error", err)
		}
	}

	for {
		ev, ok := a.ch.Recv()
		if !ok {
			break
		}
		if !a.state.Apply(ev) || a.display == nil {
			continue
		}
		if err := a.display.Draw(a.state); err != nil {
			logging.Logger.Warn("Failed to draw progress", "error", err)
		}
	}

	if a.display != nil {
		if err := a.display.Finish(a.state); err != nil {
			logging.Logger.Warn("Failed to draw final progress frame", "error", err)
		}
	}
	return a.state
}
