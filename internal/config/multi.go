package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Profiles are <label>.yaml files under ConfigsDir. The active label is
// kept in a separate file next to them.

var ErrNoConfig = errors.New("no config selected")

const defaultLabel = "Default"

// ConfigRoot is bascrape under the user config dir (%AppData% on Windows,
// $XDG_CONFIG_HOME or ~/.config on Linux).
func ConfigRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bascrape")
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func activeLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func profilePath(label string) string {
	return filepath.Join(ConfigsDir(), label+".yaml")
}

func activeLabel() (string, error) {
	b, err := os.ReadFile(activeLabelFile())
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}
	return label, nil
}

// ActiveConfigPath returns ErrNoConfig until a profile has been switched to.
func ActiveConfigPath() (string, error) {
	label, err := activeLabel()
	if err != nil {
		return "", err
	}
	return profilePath(label), nil
}

// LoadProfile reads a profile, fills its defaults and validates it.
func LoadProfile(label string) (*Config, error) {
	path := profilePath(label)
	cfg, err := loadYAML(path)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", label, err)
	}

	normalizeDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", label, err)
	}
	return cfg, nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
	// Err is set when the profile cannot be used.
	Err error
}

// ListConfigs returns every profile in label order.
func ListConfigs() ([]ConfigInfo, error) {
	paths, err := filepath.Glob(profilePath("*"))
	if err != nil {
		return nil, err
	}

	active, _ := activeLabel()
	out := make([]ConfigInfo, 0, len(paths))
	for _, path := range paths {
		label := strings.TrimSuffix(filepath.Base(path), ".yaml")
		_, loadErr := LoadProfile(label)
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   path,
			Active: label == active,
			Err:    loadErr,
		})
	}
	return out, nil
}

// SwitchConfig makes label active. A profile that does not load or
// validate is refused so scrape never starts from a broken one.
func SwitchConfig(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if _, err := LoadProfile(label); err != nil {
		return err
	}

	return os.WriteFile(activeLabelFile(), []byte(label), 0644)
}

// InitDefaultConfig writes the Default profile and makes it active. It
// returns os.ErrExist, with the path, when the file is already there.
func InitDefaultConfig() (string, error) {
	if err := os.MkdirAll(ConfigsDir(), 0755); err != nil {
		return "", err
	}

	path := profilePath(defaultLabel)
	if _, err := os.Stat(path); err == nil {
		return path, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}
	return path, SwitchConfig(defaultLabel)
}
