// changelog-publisher - Changelog to content-entry publisher
// Source: https://github.com/pianorhythm/changelog-publisher

// Package config provides hierarchical configuration management using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.changelog-publisher.yml or --config) > user config
// (~/.config/changelog-publisher/config.yml) > defaults. Project configs ending
// in .json are parsed as JSON, everything else as YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CHANGELOG_PUBLISHER_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration is the publisher's run-time configuration.
type Configuration struct {
	// SourcePath is the changelog markdown file.
	SourcePath string `koanf:"source_path" validate:"required"`
	// OutputDir is the regeneration directory. It is replaced on every build.
	OutputDir string `koanf:"output_dir" validate:"required"`
	// AuthorsFile is the author registry file name inside OutputDir.
	AuthorsFile string `koanf:"authors_file" validate:"required,excludesall=/\\"`
	// IndexPath, when set, receives a JSON listing with pagination links.
	IndexPath string `koanf:"index_path"`

	IssueTrackerURL   string `koanf:"issue_tracker_url" validate:"omitempty,url"`
	IssuePrefix       string `koanf:"issue_prefix" validate:"omitempty,alphanum"`
	CodeHostIssuesURL string `koanf:"code_host_issues_url" validate:"omitempty,url"`
	AvatarHost        string `koanf:"avatar_host" validate:"required,hostname"`

	PageSize      int    `koanf:"page_size" validate:"min=1"`
	BaseURL       string `koanf:"base_url" validate:"required"`
	RouteBasePath string `koanf:"route_base_path"`

	MaxConcurrentWrites int `koanf:"max_concurrent_writes" validate:"min=1,max=64"`

	// StateDir holds the build history. Empty disables history.
	StateDir string `koanf:"state_dir"`
	// MaxHistoryEntries sets the maximum number of build history entries to retain.
	// Oldest entries are pruned when this limit is exceeded. 0 keeps everything.
	MaxHistoryEntries int `koanf:"max_history_entries" validate:"min=0"`

	// RepoRoot is the directory relative paths were resolved against. It is
	// derived, never loaded.
	RepoRoot string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .changelog-publisher.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	projectPath := ProjectConfigPath()
	if opts.ProjectConfigPath != "" {
		projectPath = opts.ProjectConfigPath
		if !fileExists(projectPath) {
			return nil, &ValidationError{FilePath: projectPath, Message: "config file not found"}
		}
	}
	if err := loadConfigFile(k, projectPath, string(SourceProject)); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, projectPath)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil {
		return nil // No resolvable config dir, nothing to load
	}
	return loadConfigFile(k, userPath, string(SourceUser))
}

// loadConfigFile loads path with the parser matching its extension.
// Missing files are skipped.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if !fileExists(path) {
		return nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf, sourceFile string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, sourceFile); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SourcePath = expandHomePath(cfg.SourcePath)
	cfg.OutputDir = expandHomePath(cfg.OutputDir)
	cfg.IndexPath = expandHomePath(cfg.IndexPath)
	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

// ResolvePaths makes relative paths absolute against root.
func (c *Configuration) ResolvePaths(root string) {
	c.RepoRoot = root
	c.SourcePath = resolveAgainst(root, c.SourcePath)
	c.OutputDir = resolveAgainst(root, c.OutputDir)
	c.IndexPath = resolveAgainst(root, c.IndexPath)
}

func resolveAgainst(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHANGELOG_PUBLISHER_PAGE_SIZE -> page_size
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
