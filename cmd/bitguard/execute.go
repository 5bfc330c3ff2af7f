package main

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
	"github.com/spf13/cobra"
)

// NewExecuteCommand creates the 'execute' command for the CLI.
func NewExecuteCommand() *cobra.Command {
	var dataPath, instructionsPath string

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Apply HIT!/HIT? instruction records to a data file in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := task.Config{Logger: newLogger()}
			summary, err := commands.Execute(cfg, dataPath, instructionsPath)
			if err != nil {
				return err
			}
			fmt.Printf("applied %d/%d records (%d failed)\n", summary.OK+summary.Ambiguous, summary.Total, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "path to the data file to mutate in place")
	cmd.Flags().StringVar(&instructionsPath, "instructions", "", "path to the repair- or restore-instructions sidecar")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("instructions")

	return cmd
}
