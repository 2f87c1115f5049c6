package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Progress display modes
const (
	ProgressAlways = "always"
	ProgressAuto   = "auto"
	ProgressNever  = "never"
)

// DefaultProgressMode is used when neither flag nor settings choose one
const DefaultProgressMode = ProgressAuto

// Settings represents the structure of $TALLY_HOME/settings.json
type Settings struct {
	Debug          *bool       `json:"debug,omitempty"`
	Exclude        StringArray `json:"exclude,omitempty"`
	History        *bool       `json:"history,omitempty"`
	IsolateScratch *bool       `json:"isolate_scratch,omitempty"`
	MaxLogFiles    *int        `json:"max_log_files,omitempty"`
	Progress       string      `json:"progress,omitempty"`
	ScratchRoot    string      `json:"scratch_root,omitempty"`
	Sort           string      `json:"sort,omitempty"`
}

// Validate checks values that have a fixed set of choices
func (s *Settings) Validate() error {
	switch s.Progress {
	case "", ProgressAlways, ProgressAuto, ProgressNever:
	default:
		return fmt.Errorf("invalid progress mode '%s' (want %s, %s or %s)",
			s.Progress, ProgressAuto, ProgressAlways, ProgressNever)
	}
	switch s.Sort {
	case "", "files", "lines", "code", "comments", "blanks":
	default:
		return fmt.Errorf("invalid sort '%s'", s.Sort)
	}
	return nil
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = parseCommaSeparated(str)
	return nil
}

// parseCommaSeparated splits comma-separated string and trims whitespace
func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// LoadSettings loads settings from $TALLY_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.ScratchRoot != "" {
		settings.ScratchRoot = ExpandPath(settings.ScratchRoot)
	}

	return &settings, nil
}
