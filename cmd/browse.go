package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtplates/mtplates/internal/tui"
)

// Browse command flags.
var browseFlagCounty string

// browseCmd represents the browse command.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse known cities in a full-screen table",
	Long: `Open a scrollable table of every known city with its county and plate
prefix. Use the arrow keys or j/k to move and q to quit.

Examples:
  mtplates browse
  mtplates browse --county Gallatin`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseFlagCounty, "county", "c", "", "Only cities in this county")
	browseCmd.RegisterFlagCompletionFunc("county", completeCounties)

	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	title := "Montana Cities"
	if browseFlagCounty != "" {
		if _, err := ctx.Store.ResolvePrefix(browseFlagCounty); err != nil {
			return err
		}
		title = browseFlagCounty + " County"
	}

	return tui.Run(tui.BrowseConfig{
		Cities: ctx.Store.Cities(browseFlagCounty),
		Title:  title,
	})
}
