package domain

// Phase is one of the sequential stages of a repository fetch.
// Values are ordered so that a later stage compares greater.
type Phase int

const (
	PhaseFetch Phase = iota
	PhaseDeltaResolve
	PhaseCheckout
)

// String returns the phase name used in logs
func (p Phase) String() string {
	switch p {
	case PhaseFetch:
		return "fetch"
	case PhaseDeltaResolve:
		return "delta_resolve"
	case PhaseCheckout:
		return "checkout"
	default:
		return "unknown"
	}
}

// ProgressEvent is one progress callback from a fetch worker.
// Only raw counts are carried; the percentage is derived on demand.
type ProgressEvent struct {
	Current   int
	Phase     Phase
	SourceURI string
	Total     int
}

// Percent returns min(100, Current*100/Total), or 0 while Total is unknown
func (e ProgressEvent) Percent() int {
	if e.Total <= 0 || e.Current <= 0 {
		return 0
	}
	pct := e.Current * 100 / e.Total
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressState holds the latest accepted event per source.
// It has a single owner and is not safe for concurrent use.
type ProgressState struct {
	events map[string]ProgressEvent
	known  map[string]struct{}
	uris   []string
}

// NewProgressState creates a state for a fixed, ordered set of source URIs
func NewProgressState(uris []string) *ProgressState {
	state := &ProgressState{
		events: make(map[string]ProgressEvent, len(uris)),
		known:  make(map[string]struct{}, len(uris)),
	}
	for _, uri := range uris {
		if _, dup := state.known[uri]; dup {
			continue
		}
		state.known[uri] = struct{}{}
		state.uris = append(state.uris, uri)
	}
	return state
}

// Apply records ev unless it would move its source backwards.
// Events for an earlier phase than the recorded one are dropped, as are
// same-phase events whose percentage is lower than what is already shown
// (a total revised upward mid-phase). Events for unknown URIs are dropped.
// Returns true when the state changed.
func (s *ProgressState) Apply(ev ProgressEvent) bool {
	if !s.Known(ev.SourceURI) {
		return false
	}
	prev, seen := s.events[ev.SourceURI]
	if seen {
		if ev.Phase < prev.Phase {
			return false
		}
		if ev.Phase == prev.Phase && ev.Percent() < prev.Percent() {
			return false
		}
	}
	s.events[ev.SourceURI] = ev
	return true
}

// Get returns the latest event for uri and whether one was recorded
func (s *ProgressState) Get(uri string) (ProgressEvent, bool) {
	ev, ok := s.events[uri]
	return ev, ok
}

// Known reports whether uri belongs to the fixed source set
func (s *ProgressState) Known(uri string) bool {
	_, ok := s.known[uri]
	return ok
}

// URIs returns the known URIs in their original order
func (s *ProgressState) URIs() []string {
	out := make([]string, len(s.uris))
	copy(out, s.uris)
	return out
}
