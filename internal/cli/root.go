// changelog-publisher - Changelog to content-entry publisher
// Source: https://github.com/pianorhythm/changelog-publisher

// Package cli wires the cobra command tree for changelog-publisher.
// Related: internal/pipeline/publisher.go, internal/config/config.go
// Tags: cli, root, commands, global-flags
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupPublishing    = "publishing"
	GroupInspection    = "inspection"
	GroupConfiguration = "configuration"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "changelog-publisher",
	Short: "Publish a markdown changelog as dated content entries",
	Long: `changelog-publisher splits a markdown changelog into one content entry per
release, with frontmatter a static site can list and paginate.

Each "## <version> (<YYYY-MM-DD>)" section becomes "<date>-<version>.md" in the
output directory. Ticket and issue references are turned into links, committers
are collected into an author registry, and releases that share a date get
descending publish hours so the list keeps document order.`,
	Example: `  # Regenerate entries from the configured changelog
  changelog-publisher build

  # Fail CI when committed entries are out of date
  changelog-publisher check

  # Show the five newest releases
  changelog-publisher list --last 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupPublishing, Title: "Publishing:"},
		&cobra.Group{ID: GroupInspection, Title: "Inspection:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default .changelog-publisher.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	return handleError(rootCmd, err)
}

// handleError prints err and maps it to an exit code.
func handleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	// An ExitError has already been reported by its command.
	var exitErr *ExitError
	if !stderrors.As(err, &exitErr) {
		if cliErr := clierrors.AsCLIError(err); cliErr != nil {
			clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	return exitCodeOf(err)
}
