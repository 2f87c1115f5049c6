package config

import (
	"os"
	"path/filepath"
)

// GetTallyHome returns TALLY_HOME or ~/.tally default
func GetTallyHome() string {
	tallyHome := os.Getenv("TALLY_HOME")
	if tallyHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".tally"
		}
		return filepath.Join(homeDir, ".tally")
	}
	return ExpandPath(tallyHome)
}

// GetDBPath returns $TALLY_HOME/history.db
func GetDBPath() string {
	return filepath.Join(GetTallyHome(), "history.db")
}

// GetSettingsPath returns $TALLY_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetTallyHome(), "settings.json")
}

// GetScratchRoot returns TALLY_SCRATCH_ROOT or <tmp>/tally
func GetScratchRoot() string {
	if root := os.Getenv("TALLY_SCRATCH_ROOT"); root != "" {
		return ExpandPath(root)
	}
	return filepath.Join(os.TempDir(), "tally")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
