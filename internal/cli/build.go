package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
	"github.com/pianorhythm/changelog-publisher/internal/output"
	"github.com/pianorhythm/changelog-publisher/internal/pipeline"
	"github.com/pianorhythm/changelog-publisher/internal/progress"
	"github.com/spf13/cobra"
)

var buildStrict bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate content entries from the changelog",
	Long: `Regenerate the output directory from the changelog.

The output directory is replaced as a whole: entries for removed sections
disappear, and the author registry is rewritten. The new set is staged next
to the output directory and swapped in once complete.

If the changelog cannot be read, the existing entries are kept and listed and
the command still succeeds, unless --strict is given.`,
	Example: `  # Regenerate entries
  changelog-publisher build

  # Fail when the changelog is missing
  changelog-publisher build --strict

  # Machine-readable logs
  changelog-publisher build --log-format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd)
	},
}

func init() {
	buildCmd.GroupID = GroupPublishing
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "Fail instead of reusing existing entries when the changelog is unreadable")
}

func runBuild(cmd *cobra.Command) (err error) {
	p, cfg, err := newPublisher(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	var res *pipeline.Result
	defer func() { recordRun(cmd, cfg, "build", res, err, start) }()

	out := cmd.OutOrStdout()
	sp := progress.NewSpinner(out, progress.DetectTerminalCapabilities(os.Stdout))
	sp.Start("Publishing " + displayPath(cfg, cfg.SourcePath))

	res, err = p.Build(cmd.Context())
	if stderrors.Is(err, pipeline.ErrSourceUnavailable) {
		sp.Fail("changelog not readable: " + displayPath(cfg, cfg.SourcePath))
		if buildStrict {
			return clierrors.SourceNotFound(displayPath(cfg, cfg.SourcePath), err)
		}
		output.PrintWarning(out, fmt.Sprintf("kept %d previously published entries", len(res.Listing)))
		return nil
	}
	if err != nil {
		sp.Fail("build failed")
		return clierrors.WriteFailed(displayPath(cfg, cfg.OutputDir), err)
	}

	sp.Success(fmt.Sprintf("%d entries written to %s (%s)",
		res.Stats.Entries, displayPath(cfg, cfg.OutputDir), humanize.Bytes(uint64(res.Stats.Bytes))))
	printBuildNotes(cmd, res)
	if cfg.IndexPath != "" {
		output.PrintSuccess(out, "index written to "+displayPath(cfg, cfg.IndexPath))
	}
	return nil
}

// printBuildNotes reports dropped sections and skipped contributor lines.
func printBuildNotes(cmd *cobra.Command, res *pipeline.Result) {
	out := cmd.OutOrStdout()
	if res.Ingest == nil {
		return
	}
	for _, r := range res.Ingest.Rejected {
		output.PrintWarning(out, fmt.Sprintf("line %d: %s: %s", r.Line, r.Heading, r.Reason))
	}
	if n := len(res.Ingest.Skipped); n > 0 {
		output.PrintWarning(out, fmt.Sprintf("%d contributor line(s) skipped", n))
	}
	if c := res.SourceCommit; c != nil {
		output.PrintKeyValue(out, "source revision", fmt.Sprintf("%s %s (%s)", c.ShortHash(), c.Message, humanize.Time(c.When)))
	}
}
