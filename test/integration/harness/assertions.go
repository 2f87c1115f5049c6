package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/domain"
)

// HistoryEntry is one record of `tally history -f json` output.
type HistoryEntry struct {
	DerivedPath string `json:"derived_path"`
	Error       string `json:"error"`
	RunID       string `json:"run_id"`
	Status      string `json:"status"`
	URI         string `json:"uri"`
}

// AssertSuccess verifies tally exited 0.
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Equal(tb, 0, result.ExitCode,
		"tally should succeed, got exit %d.\nStdout: %s\nStderr: %s",
		result.ExitCode, result.Stdout, result.Stderr)
}

// AssertFailedWith verifies tally exited 1 and printed an "Error:" line
// containing every fragment.
func AssertFailedWith(tb testing.TB, result CommandResult, fragments ...string) {
	tb.Helper()
	require.Equal(tb, 1, result.ExitCode,
		"tally should fail with exit 1, got %d.\nStdout: %s\nStderr: %s",
		result.ExitCode, result.Stdout, result.Stderr)
	assert.Contains(tb, result.Stderr, "Error: ")
	for _, f := range fragments {
		assert.Contains(tb, result.Stderr, f, "stderr: %s", result.Stderr)
	}
}

// AssertStdoutContains verifies stdout contains the expected string.
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected,
		"Expected stdout to contain %q.\nActual stdout: %s",
		expected, result.Stdout)
}

// AssertStdoutNotContains verifies stdout does not contain the string.
func AssertStdoutNotContains(tb testing.TB, result CommandResult, unexpected string) {
	tb.Helper()
	assert.NotContains(tb, result.Stdout, unexpected,
		"Expected stdout NOT to contain %q.\nActual stdout: %s",
		unexpected, result.Stdout)
}

// AssertLanguages decodes `count -o json` output. The Total entry is
// checked against the per-language sum and returned separately.
func AssertLanguages(tb testing.TB, result CommandResult) (domain.Languages, domain.Language) {
	tb.Helper()
	AssertSuccess(tb, result)

	var langs domain.Languages
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), &langs),
		"count output should be JSON languages.\nStdout: %s", result.Stdout)

	total, ok := langs[domain.TotalKey]
	require.True(tb, ok, "count output has no %s entry: %s", domain.TotalKey, result.Stdout)
	delete(langs, domain.TotalKey)
	assert.Equal(tb, langs.Total(), total, "%s should sum every language", domain.TotalKey)
	return langs, total
}

// AssertHistory decodes `history -f json` output.
func AssertHistory(tb testing.TB, result CommandResult) []HistoryEntry {
	tb.Helper()
	AssertSuccess(tb, result)

	var entries []HistoryEntry
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), &entries),
		"history output should be a JSON array.\nStdout: %s", result.Stdout)
	return entries
}
