package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/validate"
)

// lookupCmd represents the lookup command.
var lookupCmd = &cobra.Command{
	Use:     "lookup CITY",
	Aliases: []string{"l", "find"},
	Short:   "Show the county and plate prefix of a city",
	Long: `Show the county and license plate prefix of a city. The name must match
exactly, including case; surrounding whitespace is ignored. Words after the
command are joined, so quoting multi-word names is optional.

Examples:
  mtplates lookup Bozeman
  mtplates lookup Four Corners
  mtplates lookup "Deer Lodge" --format json`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeCities,
	RunE:              runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	city := strings.TrimSpace(strings.Join(args, " "))
	if err := validate.CityName(city); err != nil {
		return err
	}

	rec, err := ctx.Store.Lookup(city)
	if errors.Is(err, mterrors.ErrCityNotFound) {
		if ctx.IsJSON() {
			if err := ctx.JSONFormatter().PrintLookup(city, nil); err != nil {
				return err
			}
		} else {
			cli := ctx.CLIFormatter()
			cli.Warning(city + " not found.")
			if hint := ctx.Store.SuggestCity(city); hint != "" {
				cli.Muted("Did you mean '" + hint + "'?")
			}
			cli.Muted(mterrors.GetSuggestion(err))
		}
		return &reportedError{err: err}
	}
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintLookup(city, &rec)
	}
	ctx.CLIFormatter().PrintCity(rec)
	return nil
}
