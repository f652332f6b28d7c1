package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// Add command flags.
var addFlagCounty string

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add CITY --county COUNTY",
	Short: "Record a city and its county",
	Long: `Record a city that is missing from the dataset. The county must be one of
Montana's 56 counties; the plate prefix is derived from it. Adding a city
that already exists replaces its county.

Examples:
  mtplates add "Four Corners" --county Gallatin
  mtplates add Big Sky -c Madison`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: cobra.NoFileCompletions,
	RunE:              runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagCounty, "county", "c", "", "County the city is in")
	addCmd.MarkFlagRequired("county")
	addCmd.RegisterFlagCompletionFunc("county", completeCounties)

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	city := strings.Join(args, " ")

	rec, err := ctx.Store.AddCity(city, addFlagCounty)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintAdded(rec)
	}
	ctx.CLIFormatter().PrintAdded(rec)
	return nil
}
