package cli

import (
	"fmt"
	"runtime"

	"github.com/pianorhythm/changelog-publisher/internal/build"
	"github.com/pianorhythm/changelog-publisher/internal/output"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for changelog-publisher",
	Example: `  # Show version info
  changelog-publisher version

  # Plain output (for scripts)
  changelog-publisher version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionPlain {
			for _, line := range build.Info() {
				fmt.Fprintln(out, line)
			}
			return
		}

		output.PrintHeader(out, "changelog-publisher "+build.Version)
		if build.IsDevBuild() {
			output.PrintWarning(out, "development build (not a release)")
		}
		output.PrintKeyValue(out, "Commit", build.ShortCommit())
		output.PrintKeyValue(out, "Built", build.BuildDate)
		output.PrintKeyValue(out, "Go", runtime.Version())
		output.PrintKeyValue(out, "Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}
