package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
	"tally/internal/ports"
)

func TestAcquire_ReplacesRemoteSourcesWithLocalPaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "scratch")
	local := t.TempDir()

	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		simulateClone(hooks, 20, 5, 4)
		return os.WriteFile(filepath.Join(dest, "main.go"), []byte("package main\n"), 0644)
	})
	display := &recordingDisplay{}
	history := &mockFetchHistory{}
	history.On("Record", mock.Anything, mock.MatchedBy(func(recs []domain.FetchRecord) bool {
		if len(recs) != 2 {
			return false
		}
		for _, r := range recs {
			if r.Status != domain.FetchStatusOK || r.RunID != "run-1" {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	svc := NewAcquisitionService(gitRepo, display, history, AcquisitionOptions{RunID: "run-1", ScratchRoot: root})
	inputs := []string{"https://github.com/user/repo", local, "git@github.com:owner/tool.git"}

	merged, err := svc.Acquire(context.Background(), inputs)

	require.NoError(t, err)
	scratch := filepath.Join(root, ScratchDirName)
	assert.Equal(t, scratch, svc.ScratchDir())
	assert.Equal(t, []string{
		local,
		filepath.Join(scratch, "repo__user"),
		filepath.Join(scratch, "tool__owner"),
	}, merged)
	for _, p := range merged {
		assert.False(t, gitRepo.IsRemoteSource(p), "remote reference left in %v", merged)
	}
	assert.FileExists(t, filepath.Join(scratch, "repo__user", "main.go"))
	assert.FileExists(t, filepath.Join(scratch, ScratchMarker))

	history.AssertExpectations(t)
	assert.Equal(t, 1, display.finished)

	final := display.frames[len(display.frames)-1]
	for _, uri := range []string{inputs[0], inputs[2]} {
		ev, ok := final[uri]
		require.True(t, ok)
		assert.Equal(t, domain.PhaseCheckout, ev.Phase)
		assert.Equal(t, 100, ev.Percent())
	}
}

func TestAcquire_PercentNonDecreasingPerPhase(t *testing.T) {
	root := t.TempDir()
	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		simulateClone(hooks, 50, 10, 7)
		// a late stale transfer callback must not regress the display
		hooks.Transfer(domain.TransferStats{ReceivedObjects: 1, TotalObjects: 50})
		return nil
	})
	display := &recordingDisplay{}
	svc := NewAcquisitionService(gitRepo, display, nil, AcquisitionOptions{ScratchRoot: root})

	_, err := svc.Acquire(context.Background(), []string{
		"https://github.com/a/one",
		"https://github.com/b/two",
		"https://github.com/c/three",
	})
	require.NoError(t, err)

	type key struct {
		uri   string
		phase domain.Phase
	}
	last := map[key]int{}
	lastPhase := map[string]domain.Phase{}
	for _, f := range display.frames {
		for uri, ev := range f {
			pct := ev.Percent()
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
			k := key{uri, ev.Phase}
			assert.GreaterOrEqual(t, pct, last[k], "percentage decreased for %v", k)
			last[k] = pct
			assert.GreaterOrEqual(t, ev.Phase, lastPhase[uri], "phase regressed for %s", uri)
			lastPhase[uri] = ev.Phase
		}
	}
	assert.Len(t, display.uris, 3)
}

func TestAcquire_CloneFailureNamesURIAndCancelsSiblings(t *testing.T) {
	root := t.TempDir()
	badURI := "https://github.com/user/unreachable"
	siblingCancelled := make(chan struct{})

	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		if uri == badURI {
			hooks.Transfer(domain.TransferStats{ReceivedObjects: 0, TotalObjects: 10})
			return errors.New("could not resolve host: github.invalid")
		}
		<-ctx.Done()
		close(siblingCancelled)
		return ctx.Err()
	})
	history := &mockFetchHistory{}
	var recorded []domain.FetchRecord
	history.On("Record", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { recorded = args.Get(1).([]domain.FetchRecord) }).
		Return(nil)

	svc := NewAcquisitionService(gitRepo, &recordingDisplay{}, history, AcquisitionOptions{ScratchRoot: root})

	merged, err := svc.Acquire(context.Background(), []string{"https://github.com/user/slow", badURI})

	require.Error(t, err)
	assert.Nil(t, merged)
	assert.ErrorIs(t, err, domain.ErrCloneFailed)
	assert.Contains(t, err.Error(), badURI)

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, badURI, fe.URI)

	select {
	case <-siblingCancelled:
	default:
		t.Fatal("sibling clone was not cancelled")
	}

	require.Len(t, recorded, 2)
	statuses := map[string]domain.FetchStatus{}
	for _, r := range recorded {
		statuses[r.URI] = r.Status
	}
	assert.Equal(t, domain.FetchStatusFailed, statuses[badURI])
	assert.Equal(t, domain.FetchStatusCancelled, statuses["https://github.com/user/slow"])
}

func TestAcquire_HistoryFailureDoesNotFailRun(t *testing.T) {
	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		return nil
	})
	history := &mockFetchHistory{}
	history.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := NewAcquisitionService(gitRepo, nil, history, AcquisitionOptions{ScratchRoot: t.TempDir()})

	merged, err := svc.Acquire(context.Background(), []string{"https://github.com/user/repo"})

	require.NoError(t, err)
	assert.Len(t, merged, 1)
}

func TestAcquire_NothingToFetchValidatesLocalPaths(t *testing.T) {
	cloneCalled := false
	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		cloneCalled = true
		return nil
	})
	root := filepath.Join(t.TempDir(), "scratch")
	svc := NewAcquisitionService(gitRepo, &recordingDisplay{}, nil, AcquisitionOptions{ScratchRoot: root})
	existing := t.TempDir()

	t.Run("all present", func(t *testing.T) {
		merged, err := svc.Acquire(context.Background(), []string{existing})
		require.NoError(t, err)
		assert.Equal(t, []string{existing}, merged)
	})

	t.Run("missing path named", func(t *testing.T) {
		missing := filepath.Join(existing, "nope")
		_, err := svc.Acquire(context.Background(), []string{existing, missing})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
		assert.Contains(t, err.Error(), missing)
	})

	assert.False(t, cloneCalled)
	assert.NoDirExists(t, root)
}

func TestAcquire_ClearsStaleScratchDir(t *testing.T) {
	root := t.TempDir()
	scratch := filepath.Join(root, ScratchDirName)
	require.NoError(t, ClaimScratch(scratch))
	stale := filepath.Join(scratch, "repo__user", "leftover.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0644))

	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		entries, err := os.ReadDir(dest)
		if err != nil {
			return err
		}
		if len(entries) != 0 {
			return errors.New("destination path already exists and is not an empty directory")
		}
		return nil
	})
	svc := NewAcquisitionService(gitRepo, nil, nil, AcquisitionOptions{ScratchRoot: root})

	_, err := svc.Acquire(context.Background(), []string{"https://github.com/user/repo"})

	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestAcquire_KeepsUserFilesInScratchRoot(t *testing.T) {
	workdir := t.TempDir()
	notes := filepath.Join(workdir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("keep me"), 0644))
	src := filepath.Join(workdir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.go"), []byte("package main\n"), 0644))

	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		return nil
	})
	svc := NewAcquisitionService(gitRepo, nil, nil, AcquisitionOptions{ScratchRoot: workdir})

	merged, err := svc.Acquire(context.Background(), []string{src, "https://github.com/user/repo"})
	require.NoError(t, err)
	require.NoError(t, CleanupScratch(svc.ScratchDir()))

	assert.FileExists(t, notes)
	assert.FileExists(t, filepath.Join(src, "main.go"))
	assert.Equal(t, src, merged[0])
	assert.NoDirExists(t, svc.ScratchDir())
}

func TestAcquire_RefusesUnmarkedScratchDir(t *testing.T) {
	root := t.TempDir()
	mine := filepath.Join(root, ScratchDirName, "mine.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(mine), 0755))
	require.NoError(t, os.WriteFile(mine, []byte("x"), 0644))

	cloneCalled := false
	gitRepo := newFakeGitRepo(func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
		cloneCalled = true
		return nil
	})
	svc := NewAcquisitionService(gitRepo, nil, nil, AcquisitionOptions{ScratchRoot: root})

	_, err := svc.Acquire(context.Background(), []string{"https://github.com/user/repo"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ScratchMarker)
	assert.False(t, cloneCalled)
	assert.FileExists(t, mine)
}

func TestMergeInputs_KeepsLocalOrderAndAppendsFetched(t *testing.T) {
	gitRepo := newFakeGitRepo(nil)
	sources := []domain.RemoteSource{
		{URI: "https://github.com/a/x", DerivedPath: "/s/x__a"},
		{URI: "git@github.com:b/y.git", DerivedPath: "/s/y__b"},
	}

	merged := MergeInputs([]string{"b", "https://github.com/a/x", "a", "git@github.com:b/y.git", "c"}, sources, gitRepo.IsRemoteSource)

	assert.Equal(t, []string{"b", "a", "c", "/s/x__a", "/s/y__b"}, merged)
	for _, m := range merged {
		assert.False(t, strings.Contains(m, "github.com"))
	}
}

func TestCleanupScratch(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		wantErr bool
	}{
		{
			name: "claimed directory",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, ClaimScratch(dir))
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "repo__user", ".git"), 0755))
			},
		},
		{
			name:  "missing directory",
			setup: func(t *testing.T, dir string) {},
		},
		{
			name: "empty directory",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(dir, 0755))
			},
		},
		{
			name: "unmarked directory with files",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(dir, 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "thesis.tex"), []byte("x"), 0644))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), ScratchDirName)
			tt.setup(t, dir)

			err := CleanupScratch(dir)

			if tt.wantErr {
				assert.Error(t, err)
				assert.DirExists(t, dir)
				return
			}
			require.NoError(t, err)
			assert.NoDirExists(t, dir)
		})
	}

	assert.Error(t, CleanupScratch(""))
	assert.Error(t, CleanupScratch("/"))
}
