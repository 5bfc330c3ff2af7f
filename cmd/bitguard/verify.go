package main

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the 'verify' command for the CLI.
func NewVerifyCommand() *cobra.Command {
	var dataPath, checksumPath, errorPath string
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare a data file against its checksum sidecar.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build()
			if err != nil {
				return err
			}
			cfg.Logger = newLogger()

			summary, _, err := commands.Verify(cfg, dataPath, checksumPath, errorPath)
			if err != nil {
				return err
			}
			fmt.Printf("verified %d blocks: %d ok, %d mismatched\n", summary.Total, summary.OK, summary.Failed)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dataPath, "data", "", "path to the data file")
	cmd.Flags().StringVar(&checksumPath, "checksum", "", "path to the checksum sidecar")
	cmd.Flags().StringVar(&errorPath, "error", "", "path to write the mismatch sidecar")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("checksum")
	cmd.MarkFlagRequired("error")

	return cmd
}
