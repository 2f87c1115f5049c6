package domain

import "time"

// FetchStatus is the outcome of one source fetch
type FetchStatus string

const (
	FetchStatusCancelled FetchStatus = "cancelled"
	FetchStatusFailed    FetchStatus = "failed"
	FetchStatusOK        FetchStatus = "ok"
)

// FetchRecord is an audit entry for one fetched source
type FetchRecord struct {
	DerivedPath string
	Error       string
	FinishedAt  time.Time
	RunID       string
	StartedAt   time.Time
	Status      FetchStatus
	URI         string
}

// Duration returns how long the fetch took
func (r FetchRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
