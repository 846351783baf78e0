// Package config holds the process-wide tracker settings, kept in a JSON
// file with environment overrides for the scan API.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// APIConfig configures the external generation API used by scans.
type APIConfig struct {
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model,omitempty"`
}

// Settings are the tracker's user settings.
type Settings struct {
	// Enabled gates prompt injection entirely.
	Enabled bool `json:"enabled"`
	// ShowWidget controls the host widget; kept for state parity with the
	// host plugin, the CLI itself never renders it.
	ShowWidget bool `json:"show_widget"`
	// Position and Depth say where the compiled block is injected.
	Position string `json:"position"`
	Depth    int    `json:"depth"`
	// AutoDetect runs the reveal detector on incoming messages.
	AutoDetect bool `json:"auto_detect"`
	// ScanDepth is how many trailing messages a scan samples.
	ScanDepth int `json:"scan_depth"`

	API APIConfig `json:"api,omitempty"`
}

// Default returns the settings used before the user saves any.
func Default() Settings {
	return Settings{
		Enabled:    true,
		ShowWidget: true,
		Position:   "in_prompt",
		Depth:      0,
		AutoDetect: true,
		ScanDepth:  10,
	}
}

// DefaultPath resolves the config file location:
// SECRETS_TRACKER_CONFIG, else ~/.secrets-tracker/config.json.
func DefaultPath() string {
	if env := os.Getenv("SECRETS_TRACKER_CONFIG"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".secrets-tracker", "config.json")
}

// Load reads settings from path, falling back to defaults for a missing
// file and for any field the file omits. Env vars override the API block:
// SECRETS_TRACKER_API_URL, SECRETS_TRACKER_API_KEY, SECRETS_TRACKER_API_MODEL.
func Load(path string) (Settings, error) {
	s := Default()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(b, &s); err != nil {
			return s, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}

	if s.ScanDepth <= 0 {
		s.ScanDepth = Default().ScanDepth
	}
	if s.Position == "" {
		s.Position = Default().Position
	}

	if v := os.Getenv("SECRETS_TRACKER_API_URL"); v != "" {
		s.API.BaseURL = v
	}
	if v := os.Getenv("SECRETS_TRACKER_API_KEY"); v != "" {
		s.API.APIKey = v
	}
	if v := os.Getenv("SECRETS_TRACKER_API_MODEL"); v != "" {
		s.API.Model = v
	}

	return s, nil
}

// Save writes settings to path, creating the directory as needed.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
