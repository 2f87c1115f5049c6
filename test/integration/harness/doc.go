// Package harness provides utilities for integration testing the tally CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - TALLY_HOME: Isolated per test (temp directory)
//   - TALLY_SCRATCH_ROOT: Isolated per test (temp directory)
//   - TALLY_DEBUG: Disabled to reduce noise
//   - GIT_TERMINAL_PROMPT: Disabled so clones never wait for credentials
package harness
