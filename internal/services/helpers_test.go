package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	adaptergit "tally/internal/adapters/git"
	"tally/internal/domain"
	"tally/internal/ports"
)

// fakeGitRepo classifies with the real adapter but clones with a stub
type fakeGitRepo struct {
	*adaptergit.CLIRepository
	clone func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error
}

func newFakeGitRepo(clone func(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error) *fakeGitRepo {
	return &fakeGitRepo{CLIRepository: adaptergit.NewCLIRepository(), clone: clone}
}

func (f *fakeGitRepo) Clone(ctx context.Context, uri, dest string, hooks ports.CloneHooks) error {
	return f.clone(ctx, uri, dest, hooks)
}

// simulateClone drives hooks the way a real clone does
func simulateClone(hooks ports.CloneHooks, objects, deltas, files int) {
	for i := 0; i <= objects; i++ {
		hooks.Transfer(domain.TransferStats{ReceivedObjects: i, TotalObjects: objects})
	}
	for i := 0; i <= deltas; i++ {
		hooks.Transfer(domain.TransferStats{ReceivedObjects: objects, TotalObjects: objects, IndexedDeltas: i, TotalDeltas: deltas})
	}
	for i := 1; i <= files; i++ {
		hooks.Checkout(i, files)
	}
}

// frame is a snapshot of the state passed to a display
type frame map[string]domain.ProgressEvent

// recordingDisplay keeps every frame it is asked to draw
type recordingDisplay struct {
	mu       sync.Mutex
	frames   []frame
	uris     []string
	finished int
}

func (d *recordingDisplay) snapshot(state *domain.ProgressState) frame {
	f := frame{}
	d.uris = state.URIs()
	for _, uri := range d.uris {
		if ev, ok := state.Get(uri); ok {
			f[uri] = ev
		}
	}
	return f
}

func (d *recordingDisplay) Draw(state *domain.ProgressState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, d.snapshot(state))
	return nil
}

func (d *recordingDisplay) Finish(state *domain.ProgressState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, d.snapshot(state))
	d.finished++
	return nil
}

// mockFetchHistory is a testify mock for ports.FetchHistory
type mockFetchHistory struct {
	mock.Mock
}

func (m *mockFetchHistory) Close() error {
	return m.Called().Error(0)
}

func (m *mockFetchHistory) Recent(ctx context.Context, limit int) ([]domain.FetchRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]domain.FetchRecord)
	return records, args.Error(1)
}

func (m *mockFetchHistory) Record(ctx context.Context, records []domain.FetchRecord) error {
	return m.Called(ctx, records).Error(0)
}

// fakeEngine returns fixed languages and remembers the paths it saw
type fakeEngine struct {
	langs domain.Languages
	paths []string
	err   error
}

func (f *fakeEngine) Count(ctx context.Context, paths []string) (domain.Languages, error) {
	f.paths = paths
	return f.langs, f.err
}
