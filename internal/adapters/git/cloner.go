package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"tally/internal/logging"
	"tally/internal/ports"
)

// cloneRepository clones uri into targetPath with checkout, reporting
// progress through hooks. targetPath may exist but must be empty.
func cloneRepository(ctx context.Context, uri, targetPath string, hooks ports.CloneHooks) error {
	logging.Logger.Info("Cloning repository", "url", uri, "target", targetPath)

	cmd := exec.CommandContext(ctx, "git", "clone", "--progress", "--", uri, targetPath)
	// Never block on a credential prompt
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to open git stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		logging.Logger.Error("Failed to start git clone", "error", err)
		return fmt.Errorf("failed to start git clone: %w", err)
	}

	parser := newProgressParser(hooks)
	parseErr := parser.Consume(stderr)

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logging.Logger.Warn("Git clone cancelled", "url", uri, "error", ctxErr)
			return ctxErr
		}
		logging.Logger.Error("Git clone failed", "url", uri, "error", err, "output", parser.Tail())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && parser.Tail() != "" {
			return fmt.Errorf("%w\nOutput: %s", err, parser.Tail())
		}
		return err
	}
	if parseErr != nil {
		logging.Logger.Warn("Failed reading git progress", "url", uri, "error", parseErr)
	}

	logging.Logger.Info("Repository cloned successfully", "url", uri, "path", targetPath)
	return nil
}
