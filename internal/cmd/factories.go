package cmd

import (
	"sync"

	adaptergit "tally/internal/adapters/git"
	adapterlinecount "tally/internal/adapters/linecount"
	adapterstorage "tally/internal/adapters/storage"
	"tally/internal/config"
	"tally/internal/logging"
	"tally/internal/ports"
	"tally/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// GitRepo classifies and clones remote sources
	GitRepo ports.GitRepository

	// History database, opened on first use
	historyErr  error
	historyOnce sync.Once
	historyPath string
	historyRepo *adapterstorage.SQLiteRepository
}

// NewContainer creates a new Container with all dependencies wired.
// Nothing is opened until a command needs it.
func NewContainer() (*Container, error) {
	return &Container{
		GitRepo:     adaptergit.NewCLIRepository(),
		historyPath: config.GetDBPath(),
	}, nil
}

// History opens the history database the first time it is called and
// returns the same store or error afterwards
func (c *Container) History() (ports.FetchHistory, error) {
	c.historyOnce.Do(func() {
		c.historyRepo, c.historyErr = adapterstorage.NewSQLiteRepository(c.historyPath)
		if c.historyErr != nil {
			logging.Logger.Warn("Fetch history unavailable", "path", c.historyPath, "error", c.historyErr)
		}
	})
	if c.historyErr != nil {
		return nil, c.historyErr
	}
	return c.historyRepo, nil
}

// NewAcquisitionService wires an acquisition run. display may be nil.
// With withHistory fetches are recorded when the history database opens;
// a database that can't be opened only disables recording.
func (c *Container) NewAcquisitionService(display ports.ProgressDisplay, withHistory bool, opts services.AcquisitionOptions) *services.AcquisitionService {
	var history ports.FetchHistory
	if withHistory {
		if h, err := c.History(); err == nil {
			history = h
		}
	}
	return services.NewAcquisitionService(c.GitRepo, display, history, opts)
}

// NewStatsService wires a statistics service that skips paths matching excludes
func (c *Container) NewStatsService(excludes []string) (*services.StatsService, error) {
	counter, err := adapterlinecount.NewCounter(excludes)
	if err != nil {
		return nil, err
	}
	return services.NewStatsService(counter), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.historyRepo != nil {
		return c.historyRepo.Close()
	}
	return nil
}
