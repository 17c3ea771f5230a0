// Package settings manages persistent user settings for the evelink CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// Host is the EVE-NG server used when --host is not specified
	Host string `json:"host,omitempty"`

	// Username is the EVE-NG username used when --username is not specified
	Username string `json:"username,omitempty"`

	// Lab is the default lab path (relative to /opt/unetlab/labs/)
	Lab string `json:"lab,omitempty"`

	// WrapperPath overrides the unl_wrapper location on the EVE-NG host
	WrapperPath string `json:"wrapper_path,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "evelink_settings.json"
	}
	return filepath.Join(home, ".evelink", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetWrapperPath returns the wrapper path (with fallback)
func (s *Settings) GetWrapperPath() string {
	if s.WrapperPath != "" {
		return s.WrapperPath
	}
	return "/opt/unetlab/wrappers/unl_wrapper"
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
