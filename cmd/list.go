package cmd

import (
	"github.com/spf13/cobra"
)

// List command flags.
var listFlagCounty string

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "cities"},
	Short:   "List known cities",
	Long: `List every known city, seed and user-added, sorted by name.

Examples:
  mtplates list
  mtplates list --county Gallatin
  mtplates list --format json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlagCounty, "county", "c", "", "Only cities in this county")
	listCmd.RegisterFlagCompletionFunc("county", completeCounties)

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listFlagCounty != "" {
		if _, err := ctx.Store.ResolvePrefix(listFlagCounty); err != nil {
			return err
		}
	}

	cities := ctx.Store.Cities(listFlagCounty)
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintCities(cities)
	}
	ctx.CLIFormatter().PrintCities(cities)
	return nil
}
