package main

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/spf13/cobra"
)

// NewRepairCommand creates the 'repair' command for the CLI.
func NewRepairCommand() *cobra.Command {
	var dataPath, errorPath, repairPath string
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Brute-force search for the original block of every mismatch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build()
			if err != nil {
				return err
			}
			cfg.Logger = newLogger()

			summary, _, err := commands.Repair(cfg, dataPath, errorPath, repairPath)
			if err != nil {
				return err
			}
			fmt.Printf("repaired %d/%d blocks (%d ambiguous, %d unresolved)\n",
				summary.OK, summary.Total, summary.Ambiguous, summary.Failed)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dataPath, "data", "", "path to the data file")
	cmd.Flags().StringVar(&errorPath, "error", "", "path to the mismatch sidecar")
	cmd.Flags().StringVar(&repairPath, "repair", "", "path to write the repair-instructions sidecar")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("error")
	cmd.MarkFlagRequired("repair")

	return cmd
}
