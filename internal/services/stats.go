package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"tally/internal/domain"
	"tally/internal/format"
	"tally/internal/logging"
	"tally/internal/ports"
)

// StdinInput is the --input value that reads serialized results from stdin
const StdinInput = "stdin"

// StatsService gathers statistics for a list of local inputs
type StatsService struct {
	engine ports.StatsEngine
	stdin  io.Reader
}

// NewStatsService creates a new StatsService
func NewStatsService(engine ports.StatsEngine) *StatsService {
	return &StatsService{
		engine: engine,
		stdin:  os.Stdin,
	}
}

// Count runs the statistics engine over paths
func (s *StatsService) Count(ctx context.Context, paths []string) (domain.Languages, error) {
	logging.Logger.Info("Counting statistics", "paths", len(paths))
	langs, err := s.engine.Count(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to count statistics: %w", err)
	}
	return langs, nil
}

// LoadPrevious parses serialized results from a file path, from stdin when
// input is "stdin", or from input itself when it is neither
func (s *StatsService) LoadPrevious(input string) (domain.Languages, error) {
	var text string

	if data, err := os.ReadFile(input); err == nil {
		text = string(data)
	} else if input == StdinInput {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	} else {
		text = input
	}

	langs, ok := format.Parse(text)
	if !ok {
		return nil, fmt.Errorf("failed to parse input %q: not a supported serialization format", input)
	}
	logging.Logger.Debug("Loaded previous results", "languages", len(langs))
	return langs, nil
}
