package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// completeCities returns known city names.
func completeCities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil || ctx.Store == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, c := range ctx.Store.Cities("") {
		if strings.HasPrefix(c.City, toComplete) {
			completions = append(completions, c.City+"\t"+c.County+" County")
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeCounties returns county names with their prefix as description.
func completeCounties(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, c := range ctx.Store.Counties() {
		if strings.HasPrefix(c.Name, toComplete) {
			completions = append(completions, c.Name+"\tprefix "+strconv.Itoa(c.Prefix))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
