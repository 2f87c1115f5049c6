package services

import (
	"context"
	"errors"
	"path/filepath"

	"tally/internal/domain"
	"tally/internal/logging"
	"tally/internal/ports"
)

// AcquisitionOptions configures one acquisition run
type AcquisitionOptions struct {
	// RunID tags history records written by this run
	RunID string
	// ScratchRoot is the configured root; clones go to its ScratchDirName
	// subdirectory, which is the only thing tally clears
	ScratchRoot string
}

// AcquisitionService turns remote repository references in an input list
// into local checkouts
type AcquisitionService struct {
	display ports.ProgressDisplay
	gitRepo ports.GitRepository
	history ports.FetchHistory
	opts    AcquisitionOptions
}

// NewAcquisitionService creates a new AcquisitionService.
// display and history may be nil.
func NewAcquisitionService(
	gitRepo ports.GitRepository,
	display ports.ProgressDisplay,
	history ports.FetchHistory,
	opts AcquisitionOptions,
) *AcquisitionService {
	return &AcquisitionService{
		display: display,
		gitRepo: gitRepo,
		history: history,
		opts:    opts,
	}
}

// ScratchDir returns the tally-owned directory fetched sources are written under
func (s *AcquisitionService) ScratchDir() string {
	return filepath.Join(s.opts.ScratchRoot, ScratchDirName)
}

// Acquire returns inputs with every remote reference replaced by a local
// checkout. When no input is remote nothing is fetched and every input must
// exist locally instead.
func (s *AcquisitionService) Acquire(ctx context.Context, inputs []string) ([]string, error) {
	scratchDir := s.ScratchDir()
	if s.hasRemote(inputs) {
		// A leftover non-empty destination makes git clone fail
		if err := CleanupScratch(scratchDir); err != nil {
			return nil, err
		}
		if err := ClaimScratch(scratchDir); err != nil {
			return nil, err
		}
	}

	sources, err := DeriveDestinations(inputs, scratchDir, s.gitRepo)
	if errors.Is(err, domain.ErrNothingToFetch) {
		logging.Logger.Debug("No remote sources, validating local inputs", "inputs", len(inputs))
		if err := ValidateLocalInputs(inputs); err != nil {
			return nil, err
		}
		out := make([]string, len(inputs))
		copy(out, inputs)
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Fetching remote sources", "count", len(sources), "scratch_dir", scratchDir)
	records, fetchErr := fetchAll(ctx, s.gitRepo, s.display, sources, s.opts.RunID)
	s.record(ctx, records)
	if fetchErr != nil {
		return nil, fetchErr
	}

	return MergeInputs(inputs, sources, s.gitRepo.IsRemoteSource), nil
}

func (s *AcquisitionService) hasRemote(inputs []string) bool {
	for _, input := range inputs {
		if s.gitRepo.IsRemoteSource(input) {
			return true
		}
	}
	return false
}

// record writes history; failures never fail the run
func (s *AcquisitionService) record(ctx context.Context, records []domain.FetchRecord) {
	if s.history == nil || len(records) == 0 {
		return
	}
	// Still record after an interrupt cancelled ctx
	if err := s.history.Record(context.WithoutCancel(ctx), records); err != nil {
		logging.Logger.Warn("Failed to record fetch history", "error", err)
	}
}
