package cli

import (
	"fmt"

	"github.com/fatih/color"
	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
	"github.com/pianorhythm/changelog-publisher/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyCommand string
	historyLimit   int
	historyClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View build history",
	Long: `View a log of build and watch runs with timestamp, run id, exit code,
entry count, and duration. Runs that kept previously published entries
because the changelog was unreadable are marked as fallback.

History is stored in state_dir and pruned to max_history_entries.`,
	Example: `  # Every recorded run
  changelog-publisher history

  # The last five builds
  changelog-publisher history --command build -n 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd)
	},
}

func init() {
	historyCmd.GroupID = GroupInspection
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyCommand, "command", "", "Filter by command (build or watch)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Clear all history")
}

func runHistory(cmd *cobra.Command) error {
	if historyLimit < 0 {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("--limit must be positive, got %d", historyLimit),
			"changelog-publisher history --limit <N>",
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cfg.StateDir == "" {
		fmt.Fprintln(out, "History is disabled (state_dir is empty).")
		return nil
	}

	if historyClear {
		if err := history.ClearHistory(cfg.StateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, historyCommand, historyLimit)
	if len(entries) == 0 {
		if historyCommand != "" {
			fmt.Fprintf(out, "No matching entries for command '%s'.\n", historyCommand)
		} else {
			fmt.Fprintln(out, "No history available.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries filters and limits history entries.
func filterEntries(entries []history.HistoryEntry, command string, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry

	for _, entry := range entries {
		if command == "" || entry.Command == command {
			result = append(result, entry)
		}
	}

	// Apply limit (most recent entries)
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}

	return result
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Local().Format("2006-01-02 15:04:05")

		exitCodeStr := fmt.Sprintf("%d", entry.ExitCode)
		if entry.ExitCode == 0 {
			exitCodeStr = green(exitCodeStr)
		} else {
			exitCodeStr = red(exitCodeStr)
		}

		runID := entry.RunID
		if runID == "" {
			runID = "-"
		}

		line := fmt.Sprintf("%s  %-7s  %-24s  exit=%s  entries=%-4d  %s",
			cyan(timestamp),
			entry.Command,
			runID,
			exitCodeStr,
			entry.Entries,
			entry.Duration,
		)
		if entry.Fallback {
			line += "  " + yellow("fallback")
		}
		fmt.Fprintln(out, line)
	}
}
