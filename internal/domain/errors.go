package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCloneFailed       = errors.New("clone failed")
	ErrDestinationFailed = errors.New("failed to create destination")
	ErrInputNotFound     = errors.New("input not found")
	ErrNothingToFetch    = errors.New("no remote sources to fetch")
)

// FetchErrorKind identifies which stage of acquisition failed
type FetchErrorKind int

const (
	KindDestination FetchErrorKind = iota
	KindClone
	KindMissingInput
)

// String returns the kind name used in logs
func (k FetchErrorKind) String() string {
	switch k {
	case KindDestination:
		return "destination"
	case KindClone:
		return "clone"
	case KindMissingInput:
		return "missing_input"
	default:
		return "unknown"
	}
}

// FetchError is returned by the acquisition pipeline for every fatal condition.
// URI is set for clone failures, Path for destination and missing-input failures.
type FetchError struct {
	Err  error
	Kind FetchErrorKind
	Path string
	URI  string
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindDestination:
		return fmt.Sprintf("cannot create directory %s for %s: %v", e.Path, e.URI, e.Err)
	case KindClone:
		return fmt.Sprintf("could not clone %s: %v", e.URI, e.Err)
	case KindMissingInput:
		return fmt.Sprintf("'%s' not found", e.Path)
	default:
		return fmt.Sprintf("fetch error: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the kind-level sentinels so callers can use errors.Is
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrCloneFailed:
		return e.Kind == KindClone
	case ErrDestinationFailed:
		return e.Kind == KindDestination
	case ErrInputNotFound:
		return e.Kind == KindMissingInput
	}
	return false
}
