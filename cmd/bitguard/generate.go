package main

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the 'generate' command for the CLI.
func NewGenerateCommand() *cobra.Command {
	var dataPath, checksumPath string
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute a checksum sidecar over a data file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build()
			if err != nil {
				return err
			}
			cfg.Logger = newLogger()

			summary, err := commands.Generate(cfg, dataPath, checksumPath)
			if err != nil {
				return err
			}
			fmt.Printf("generated %d digests\n", summary.Total)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&dataPath, "data", "", "path to the data file")
	cmd.Flags().StringVar(&checksumPath, "checksum", "", "path to write the checksum sidecar")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("checksum")

	return cmd
}
