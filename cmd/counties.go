package cmd

import (
	"github.com/spf13/cobra"
)

// countiesCmd represents the counties command.
var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "List Montana counties and their plate prefixes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := ctx.Store.Counties()
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintCounties(list)
		}
		ctx.CLIFormatter().PrintCounties(list)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}
