package cli

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/pianorhythm/changelog-publisher/internal/content"
	"github.com/pianorhythm/changelog-publisher/internal/pipeline"
	"github.com/spf13/cobra"
)

var showPlain bool

var showCmd = &cobra.Command{
	Use:   "show <version>",
	Short: "Show one published entry",
	Long: `Show the published entry for a version. The leading "v" is optional and
matching ignores case.`,
	Example: `  changelog-publisher show 2.1.0
  changelog-publisher show v2.1.0 --plain`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args[0])
	},
}

func init() {
	showCmd.GroupID = GroupInspection
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Plain text output (no colors)")
}

func runShow(cmd *cobra.Command, version string) error {
	p, _, err := newPublisher(cmd)
	if err != nil {
		return err
	}

	listing, err := p.Listing()
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}
	entries := make([]content.Entry, len(listing))
	for i, a := range listing {
		entries[i] = a.Entry
	}

	e, err := content.GetVersion(entries, version)
	if err != nil {
		var notFound *content.VersionNotFoundError
		if stderrors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, v := range notFound.AvailableVersions {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", v)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := content.FormatEntry(*e, out, content.FormatOptions{Plain: showPlain}); err != nil {
		return fmt.Errorf("formatting entry: %w", err)
	}
	for _, a := range listing {
		if a.File == e.File {
			fmt.Fprintf(out, "\nListed on %s (page %d)\n", a.ListPageLink, a.Page)
			break
		}
	}
	return printContributors(out, p, e.Authors)
}

// printContributors lists the entry's authors with the name and profile URL
// from the author registry.
func printContributors(out io.Writer, p *pipeline.Publisher, aliases []string) error {
	if len(aliases) == 0 {
		return nil
	}
	reg, err := p.Store().LoadAuthors()
	if err != nil {
		return fmt.Errorf("loading authors: %w", err)
	}

	fmt.Fprintln(out, "\nContributors:")
	for _, alias := range aliases {
		c, ok := reg.Get(alias)
		if !ok {
			fmt.Fprintf(out, "  @%s\n", alias)
			continue
		}
		label := "@" + alias
		if c.Name != "" {
			label = fmt.Sprintf("%s (@%s)", c.Name, alias)
		}
		fmt.Fprintf(out, "  %s %s\n", label, c.URL)
	}
	return nil
}
