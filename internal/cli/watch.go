package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/pianorhythm/changelog-publisher/internal/output"
	"github.com/pianorhythm/changelog-publisher/internal/pipeline"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild entries whenever the changelog changes",
	Long: `Build once, then rebuild every time the changelog file is written,
created or replaced. Bursts of writes are coalesced. Stop with Ctrl+C.

Only the changelog is watched, never the output directory.`,
	Example: `  changelog-publisher watch
  changelog-publisher watch --debounce 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	watchCmd.GroupID = GroupPublishing
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", pipeline.DefaultDebounce, "Quiet period before rebuilding")
}

func runWatch(cmd *cobra.Command) error {
	p, cfg, err := newPublisher(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", displayPath(cfg, cfg.SourcePath))

	err = p.Watch(cmd.Context(), watchDebounce, func(res *pipeline.Result, err error) {
		now := time.Now()
		stamp := now.Format(time.TimeOnly)
		defer recordRun(cmd, cfg, "watch", res, err, now)
		switch {
		case stderrors.Is(err, pipeline.ErrSourceUnavailable):
			output.PrintWarning(out, fmt.Sprintf("%s changelog not readable, kept %d entries", stamp, len(res.Listing)))
		case err != nil:
			output.PrintFailure(out, fmt.Sprintf("%s build failed: %v", stamp, err))
		default:
			output.PrintSuccess(out, fmt.Sprintf("%s %d entries written", stamp, res.Stats.Entries))
			printBuildNotes(cmd, res)
		}
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
