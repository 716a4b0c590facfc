package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pianorhythm/changelog-publisher/internal/content"
	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
	"github.com/pianorhythm/changelog-publisher/internal/output"
	"github.com/spf13/cobra"
)

// timestampLayout is the layout of entry dates ("2024-01-05T20:00").
const timestampLayout = "2006-01-02T15:04"

// summaryWidth bounds the summary column.
const summaryWidth = 48

var listLast int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List published entries, newest first",
	Long: `List the entries currently in the output directory, newest first, with
the list page each one appears on.`,
	Example: `  # All entries
  changelog-publisher list

  # The ten newest
  changelog-publisher list --last 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd)
	},
}

func init() {
	listCmd.GroupID = GroupInspection
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listLast, "last", 0, "Number of entries to show (0 = all)")
}

func runList(cmd *cobra.Command) error {
	if listLast < 0 {
		return clierrors.InvalidLastN(listLast)
	}

	p, cfg, err := newPublisher(cmd)
	if err != nil {
		return err
	}

	listing, err := p.Listing()
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(listing) == 0 {
		fmt.Fprintf(out, "No entries in %s. Run 'changelog-publisher build' first.\n", displayPath(cfg, cfg.OutputDir))
		return nil
	}

	shown := listing
	if listLast > 0 {
		shown = content.GetLastN(listing, listLast)
	}

	tbl := output.NewTable("Version", "Published", "Age", "Authors", "Page", "Summary")
	for _, a := range shown {
		tbl.AppendRow(table.Row{
			a.Version,
			a.Date,
			age(a.Date),
			strings.Join(a.Authors, ", "),
			a.ListPageLink,
			content.Summary(a.Entry, summaryWidth),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d of %d entries", len(shown), len(listing))})
	output.RenderTable(out, tbl)
	return nil
}

// age renders an entry date relative to now, or "-" if it does not parse.
func age(date string) string {
	t, err := time.ParseInLocation(timestampLayout, date, time.Local)
	if err != nil {
		return "-"
	}
	return humanize.Time(t)
}
