package config

import (
	"os"
	"path/filepath"
)

// AppName is used for config directory and file names.
const AppName = "changelog-publisher"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/changelog-publisher/config.yml
// - macOS: ~/Library/Application Support/changelog-publisher/config.yml
// - Windows: %APPDATA%\changelog-publisher\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .changelog-publisher.yml relative to the current directory.
func ProjectConfigPath() string {
	return "." + AppName + ".yml"
}
