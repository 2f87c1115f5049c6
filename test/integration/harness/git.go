package harness

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test when no git binary is available.
func RequireGit(tb testing.TB) {
	tb.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		tb.Skip("git not available")
	}
}

// NewSourceTree writes files (relative path -> content) under a new temp
// directory and returns its path.
func NewSourceTree(tb testing.TB, files map[string]string) string {
	tb.Helper()

	root := tb.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			tb.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			tb.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}

// NewGitRepo creates a source tree and commits it to a fresh repository.
func NewGitRepo(tb testing.TB, files map[string]string) string {
	tb.Helper()
	RequireGit(tb)

	root := NewSourceTree(tb, files)
	runGitCommand(tb, root, "init")
	runGitCommand(tb, root, "add", ".")
	runGitCommand(tb, root, "commit", "-m", "Initial commit")
	return root
}

// RunGitCommand executes a git command in the specified directory (exported for tests).
func RunGitCommand(tb testing.TB, dir string, args ...string) {
	runGitCommand(tb, dir, args...)
}

// runGitCommand executes a git command in the specified directory.
func runGitCommand(tb testing.TB, dir string, args ...string) {
	tb.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		tb.Fatalf("git %v failed in %s: %v\nOutput: %s", args, dir, err, output)
	}
}
