package cli

import (
	"fmt"

	"github.com/pianorhythm/changelog-publisher/internal/config"
	"github.com/pianorhythm/changelog-publisher/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect changelog-publisher configuration",
	Long: `Inspect changelog-publisher configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHANGELOG_PUBLISHER_*)
  2. Project config (.changelog-publisher.yml, or --config)
  3. User config (~/.config/changelog-publisher/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  changelog-publisher config show

  # Start a project config
  changelog-publisher config template > .changelog-publisher.yml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printConfig(cmd, cfg)
		return nil
	},
}

var configTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a commented config file with the defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where config files are read from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		user, err := config.UserConfigPath()
		if err != nil {
			user = "(unavailable: " + err.Error() + ")"
		}
		project := config.ProjectConfigPath()
		if configPath != "" {
			project = configPath
		}
		output.PrintKeyValue(out, "user", user)
		output.PrintKeyValue(out, "project", project)
		output.PrintKeyValue(out, "env prefix", config.EnvPrefix)
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configTemplateCmd, configPathCmd)
}

// printConfig prints every key with its effective value, in template order.
func printConfig(cmd *cobra.Command, cfg *config.Configuration) {
	out := cmd.OutOrStdout()
	output.PrintHeader(out, "Effective configuration")
	output.PrintKeyValue(out, "repo_root", cfg.RepoRoot)
	output.PrintKeyValue(out, "source_path", cfg.SourcePath)
	output.PrintKeyValue(out, "output_dir", cfg.OutputDir)
	output.PrintKeyValue(out, "authors_file", cfg.AuthorsFile)
	output.PrintKeyValue(out, "index_path", orNone(cfg.IndexPath))
	output.PrintKeyValue(out, "issue_tracker_url", orNone(cfg.IssueTrackerURL))
	output.PrintKeyValue(out, "issue_prefix", orNone(cfg.IssuePrefix))
	output.PrintKeyValue(out, "code_host_issues_url", orNone(cfg.CodeHostIssuesURL))
	output.PrintKeyValue(out, "avatar_host", cfg.AvatarHost)
	output.PrintKeyValue(out, "page_size", cfg.PageSize)
	output.PrintKeyValue(out, "base_url", cfg.BaseURL)
	output.PrintKeyValue(out, "route_base_path", orNone(cfg.RouteBasePath))
	output.PrintKeyValue(out, "max_concurrent_writes", cfg.MaxConcurrentWrites)
	output.PrintKeyValue(out, "state_dir", orNone(cfg.StateDir))
	output.PrintKeyValue(out, "max_history_entries", cfg.MaxHistoryEntries)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
