// Package settings persists the user's composition preferences between
// runs.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings controls which translation fields go into composed text and
// how the UI is drawn.
type Settings struct {
	IncludePrimary   bool   `json:"include_primary"`
	IncludeSecondary bool   `json:"include_secondary"`
	Theme            string `json:"theme"`
}

// Default returns the settings used when nothing has been saved yet.
func Default() Settings {
	return Settings{IncludePrimary: true, IncludeSecondary: true, Theme: "azure"}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "versedrop", "settings.json"), nil
}

// Load reads settings from path. A missing or unreadable file falls
// back to defaults so a fresh install starts without ceremony; fields
// absent from the file keep their default values.
func Load(path string) Settings {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default()
	}
	return s
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
