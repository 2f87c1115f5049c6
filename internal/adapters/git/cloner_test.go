package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
	"tally/internal/ports"
)

// setupTestRepo creates a git repo with initial commit for testing
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()

	runGit := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=Test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v failed: %s", args, out)
	}

	runGit("init")
	runGit("config", "user.email", "test@test.com")
	runGit("config", "user.name", "Test")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0644))
	runGit("add", ".")
	runGit("commit", "-m", "Initial commit")

	return dir
}

func TestCloneRepository_IntoEmptyExistingDir(t *testing.T) {
	src := setupTestRepo(t)
	dest := filepath.Join(t.TempDir(), "repo__test")
	require.NoError(t, os.MkdirAll(dest, 0755))

	var transfers []domain.TransferStats
	hooks := ports.CloneHooks{
		Transfer: func(stats domain.TransferStats) { transfers = append(transfers, stats) },
	}

	err := NewCLIRepository().Clone(context.Background(), "file://"+src, dest, hooks)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "main.go"))
	assert.DirExists(t, filepath.Join(dest, ".git"))
	for _, s := range transfers {
		assert.LessOrEqual(t, s.ReceivedObjects, s.TotalObjects)
	}
}

func TestCloneRepository_NonEmptyTargetFails(t *testing.T) {
	src := setupTestRepo(t)
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "stale"), []byte("x"), 0644))

	err := NewCLIRepository().Clone(context.Background(), "file://"+src, dest, ports.CloneHooks{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCloneRepository_MissingSourceFails(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dest := filepath.Join(t.TempDir(), "out")

	err := cloneRepository(context.Background(), "file:///nonexistent/tally/repo", dest, ports.CloneHooks{})

	assert.Error(t, err)
}

func TestCloneRepository_CancelledContext(t *testing.T) {
	src := setupTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cloneRepository(ctx, "file://"+src, filepath.Join(t.TempDir(), "out"), ports.CloneHooks{})

	assert.Error(t, err)
}
