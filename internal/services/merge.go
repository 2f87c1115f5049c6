package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/domain"
	"tally/internal/logging"
)

const (
	// ScratchDirName is the directory tally clones into under the configured scratch root
	ScratchDirName = "tally-scratch"
	// ScratchMarker marks a scratch directory as safe for tally to remove
	ScratchMarker = ".tally-scratch"
)

// MergeInputs drops every remote entry from inputs, keeping the order of the
// rest, and appends each fetched source's local path
func MergeInputs(inputs []string, sources []domain.RemoteSource, isRemote func(string) bool) []string {
	merged := make([]string, 0, len(inputs)+len(sources))
	for _, input := range inputs {
		if isRemote(input) {
			continue
		}
		merged = append(merged, input)
	}
	for _, src := range sources {
		merged = append(merged, src.DerivedPath)
	}
	return merged
}

// ValidateLocalInputs returns a missing-input error naming the first input
// that does not exist
func ValidateLocalInputs(inputs []string) error {
	for _, input := range inputs {
		if _, err := os.Stat(input); err != nil {
			return &domain.FetchError{Kind: domain.KindMissingInput, Path: input, Err: err}
		}
	}
	return nil
}

// CleanupScratch removes a scratch directory created by ClaimScratch. A
// directory tally does not own is left alone and reported as an error; an
// empty or missing one is fine.
func CleanupScratch(dir string) error {
	if dir == "" || dir == "/" {
		return fmt.Errorf("refusing to remove scratch directory %q", dir)
	}

	owned, err := ownsScratch(dir)
	if err != nil {
		return err
	}
	if !owned {
		logging.Logger.Error("Scratch directory not owned by tally", "path", dir)
		return fmt.Errorf("refusing to remove %s: it is not empty and has no %s marker", dir, ScratchMarker)
	}

	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Logger.Error("Failed to remove scratch directory", "path", dir, "error", err)
		return fmt.Errorf("failed to remove scratch directory %s: %w", dir, err)
	}
	logging.Logger.Debug("Scratch directory removed", "path", dir)
	return nil
}

// ClaimScratch creates dir and marks it as owned by tally
func ClaimScratch(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, ScratchMarker), nil, 0644); err != nil {
		return fmt.Errorf("failed to mark scratch directory %s: %w", dir, err)
	}
	return nil
}

// ownsScratch reports whether dir is missing, empty, or carries the marker
func ownsScratch(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read scratch directory %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return true, nil
	}
	if _, err := os.Stat(filepath.Join(dir, ScratchMarker)); err == nil {
		return true, nil
	}
	return false, nil
}
