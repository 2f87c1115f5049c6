package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnvironment provides an isolated test environment with its own
// TALLY_HOME and scratch root.
type TestEnvironment struct {
	ScratchRoot string
	TallyHome   string
	extraEnv    map[string]string
	tb          testing.TB
}

// NewTestEnvironment creates an isolated test environment under temp directories.
// The temp directories are automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		ScratchRoot: filepath.Join(tb.TempDir(), "scratch"),
		TallyHome:   tb.TempDir(),
		extraEnv:    make(map[string]string),
		tb:          tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out TALLY_* variables and sets:
//   - TALLY_HOME to the temp directory
//   - TALLY_SCRATCH_ROOT to a temp directory
//   - TALLY_DEBUG to empty string (disables debug logging)
//   - GIT_TERMINAL_PROMPT to 0
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+4+len(e.extraEnv))

	// Build a set of keys we want to override
	overrideKeys := map[string]bool{
		"GIT_TERMINAL_PROMPT": true,
	}
	for k := range e.extraEnv {
		overrideKeys[k] = true
	}

	// Filter out existing TALLY_* variables and any we're overriding
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		key := parts[0]
		if strings.HasPrefix(key, "TALLY_") || overrideKeys[key] {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"TALLY_HOME="+e.TallyHome,
		"TALLY_SCRATCH_ROOT="+e.ScratchRoot,
		"TALLY_DEBUG=",
		"GIT_TERMINAL_PROMPT=0",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test history database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.TallyHome, "history.db")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// WriteSettings writes settings.json into TALLY_HOME.
func (e *TestEnvironment) WriteSettings(content string) {
	e.tb.Helper()
	if err := os.WriteFile(filepath.Join(e.TallyHome, "settings.json"), []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write settings: %v", err)
	}
}
