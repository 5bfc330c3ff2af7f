package main

import (
	"github.com/coldcellar/bitguard/internal/bitguard/checksum"
	"github.com/spf13/cobra"
)

// methodCompletions provides dynamic tab completion for --method,
// listing every registered checksum method name.
func methodCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return checksum.Names(), cobra.ShellCompDirectiveNoFileComp
}

// modeCompletions provides dynamic tab completion for --mode.
func modeCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"all", "ambi_no", "ambi_only"}, cobra.ShellCompDirectiveNoFileComp
}
