package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"tally/internal/config"
	"tally/internal/domain"
	"tally/internal/format"
	"tally/internal/logging"
	"tally/internal/ports"
	"tally/internal/services"
	"tally/internal/ui"
)

const (
	defaultSort = string(domain.SortCode)
	// Bars are only drawn on terminals at least this wide
	minBarTerminalWidth = 110
	progressBarWidth    = 24
)

// CountCmd counts lines of code, fetching remote repositories first
type CountCmd struct {
	Exclude        []string `help:"Glob of paths to skip, relative to each input (repeatable)" short:"e"`
	Input          string   `help:"Merge previously serialized results: a file path, 'stdin', or the text itself" short:"i"`
	Inputs         []string `arg:"" optional:"" help:"Local paths and remote repository URLs (default: current directory)"`
	IsolateScratch bool     `help:"Clone into a per-run directory under the scratch root"`
	KeepScratch    bool     `help:"Keep fetched repositories after counting"`
	NoHistory      bool     `help:"Don't record fetches in the history database"`
	Output         string   `help:"Print results in a serialization format instead of a table (see 'tally formats')" short:"o"`
	Progress       string   `help:"When to show fetch progress" default:"auto" enum:"auto,always,never"`
	Reverse        bool     `help:"Reverse the table order"`
	ScratchRoot    string   `help:"Directory remote repositories are cloned into (default: $TALLY_SCRATCH_ROOT or <tmp>/tally)" placeholder:"DIR"`
	Sort           string   `help:"Column to order the table by" default:"code" enum:"files,lines,code,comments,blanks"`
}

// Run executes the count command
func (c *CountCmd) Run(cli *CLI) error {
	c.applySettings(cli.settings)

	if len(c.Inputs) == 0 {
		c.Inputs = []string{"."}
	}
	if c.Output != "" {
		if _, err := format.Lookup(c.Output); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New().String()
	scratchRoot := c.ScratchRoot
	if scratchRoot == "" {
		scratchRoot = config.GetScratchRoot()
	}
	if c.IsolateScratch {
		scratchRoot = filepath.Join(scratchRoot, runID)
	}
	logging.Logger.Info("Starting count", "run_id", runID, "inputs", len(c.Inputs), "scratch_root", scratchRoot)

	stats, err := cli.Container.NewStatsService(c.Exclude)
	if err != nil {
		return err
	}

	// Bad --input fails before anything is fetched
	var previous domain.Languages
	if c.Input != "" {
		previous, err = stats.LoadPrevious(c.Input)
		if err != nil {
			return err
		}
	}

	acquisition := cli.Container.NewAcquisitionService(
		c.progressDisplay(),
		!c.NoHistory,
		services.AcquisitionOptions{RunID: runID, ScratchRoot: scratchRoot},
	)

	if !c.KeepScratch && c.hasRemote(cli.Container.GitRepo) {
		// Runs after statistics are gathered, on success and failure
		defer func() {
			if err := services.CleanupScratch(acquisition.ScratchDir()); err != nil {
				logging.Logger.Warn("Failed to clean up scratch directory", "error", err)
			}
			if c.IsolateScratch {
				// Only removes the per-run directory if nothing else was put there
				_ = os.Remove(scratchRoot)
			}
		}()
	}

	paths, err := acquisition.Acquire(ctx, c.Inputs)
	if err != nil {
		return err
	}

	langs, err := stats.Count(ctx, paths)
	if err != nil {
		return err
	}
	if previous != nil {
		langs.Merge(previous)
	}

	if c.Output != "" {
		out, err := format.Print(langs, c.Output)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Println(ui.RenderLanguages(langs, domain.SortKey(c.Sort), c.Reverse))
	return nil
}

// applySettings fills flags still at their defaults from settings.json
func (c *CountCmd) applySettings(settings *config.Settings) {
	if settings == nil {
		return
	}

	if c.ScratchRoot == "" {
		if os.Getenv("TALLY_SCRATCH_ROOT") == "" {
			c.ScratchRoot = settings.ScratchRoot
		}
	}
	if !c.IsolateScratch && settings.IsolateScratch != nil {
		c.IsolateScratch = *settings.IsolateScratch
	}
	if c.Progress == config.DefaultProgressMode && settings.Progress != "" {
		c.Progress = settings.Progress
	}
	if len(c.Exclude) == 0 && len(settings.Exclude) > 0 {
		c.Exclude = settings.Exclude
	}
	if !c.NoHistory && settings.History != nil && !*settings.History {
		c.NoHistory = true
	}
	if c.Sort == defaultSort && settings.Sort != "" {
		c.Sort = settings.Sort
	}
}

func (c *CountCmd) hasRemote(parser ports.RemoteSourceParser) bool {
	for _, input := range c.Inputs {
		if parser.IsRemoteSource(input) {
			return true
		}
	}
	return false
}

// progressDisplay returns the stderr renderer for the chosen mode, or nil
func (c *CountCmd) progressDisplay() ports.ProgressDisplay {
	fd := int(os.Stderr.Fd())
	tty := term.IsTerminal(fd)

	switch c.Progress {
	case config.ProgressNever:
		return nil
	case config.ProgressAuto:
		if !tty {
			return nil
		}
	}

	if !tty {
		return ui.NewProgressRenderer(os.Stderr)
	}

	opts := []ui.ProgressOption{ui.WithStyles()}
	if width, _, err := term.GetSize(fd); err == nil && width >= minBarTerminalWidth {
		opts = append(opts, ui.WithBar(progressBarWidth))
	}
	return ui.NewProgressRenderer(os.Stderr, opts...)
}
