package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
	"github.com/pianorhythm/changelog-publisher/internal/output"
	"github.com/pianorhythm/changelog-publisher/internal/pipeline"
	"github.com/spf13/cobra"
)

var checkNamesOnly bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the output directory matches the changelog",
	Long: `Verify that the output directory is exactly what build would write.

Nothing is written. Returns exit code 0 when in sync, or exit code 1 with a
line diff for every missing, stale or changed file.`,
	Example: `  # CI gate after editing the changelog
  changelog-publisher check

  # Only list differing files
  changelog-publisher check --name-only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.GroupID = GroupPublishing
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkNamesOnly, "name-only", false, "List differing files without diffs")
}

func runCheck(cmd *cobra.Command) error {
	p, cfg, err := newPublisher(cmd)
	if err != nil {
		return err
	}

	drift, _, err := p.Check()
	if stderrors.Is(err, pipeline.ErrSourceUnavailable) {
		return clierrors.SourceNotFound(displayPath(cfg, cfg.SourcePath), err)
	}
	if err != nil {
		return fmt.Errorf("checking output: %w", err)
	}

	out := cmd.OutOrStdout()
	dir := displayPath(cfg, cfg.OutputDir)
	if drift.Clean() {
		output.PrintSuccess(out, fmt.Sprintf("%s is in sync with %s (%d files)", dir, displayPath(cfg, cfg.SourcePath), drift.Desired))
		return nil
	}

	for _, f := range drift.Files {
		output.PrintFailure(out, fmt.Sprintf("%s (%s)", f.Name, f.Kind))
		if !checkNamesOnly {
			writeDiff(out, f.Diff)
		}
	}
	return clierrors.DriftDetected(dir, len(drift.Files))
}

// writeDiff prints a line diff indented, with additions green and removals red.
func writeDiff(out io.Writer, diff string) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			line = green(line)
		case strings.HasPrefix(line, "-"):
			line = red(line)
		case strings.HasPrefix(line, "@@"):
			line = dim(line)
		}
		fmt.Fprintf(out, "    %s\n", line)
	}
	fmt.Fprintln(out)
}
