package main

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/spf13/cobra"
)

// NewRestoreCommand creates the 'restore' command for the CLI.
func NewRestoreCommand() *cobra.Command {
	var repairPath, backupDataPath, backupChecksumPath, restorePath string
	flags := &taskFlags{}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Reconcile repair instructions against a backup copy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.build()
			if err != nil {
				return err
			}
			cfg.Logger = newLogger()

			summary, _, err := commands.Restore(cfg, repairPath, backupDataPath, backupChecksumPath, restorePath)
			if err != nil {
				return err
			}
			fmt.Printf("restored %d/%d blocks (%d ambiguous, %d unresolved)\n",
				summary.OK, summary.Total, summary.Ambiguous, summary.Failed)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&repairPath, "repair", "", "path to the repair-instructions sidecar")
	cmd.Flags().StringVar(&backupDataPath, "backup", "", "path to the backup data file")
	cmd.Flags().StringVar(&backupChecksumPath, "backup-checksum", "", "path to the backup checksum sidecar")
	cmd.Flags().StringVar(&restorePath, "restore", "", "path to write the restore-instructions sidecar")
	cmd.MarkFlagRequired("repair")
	cmd.MarkFlagRequired("backup")
	cmd.MarkFlagRequired("backup-checksum")
	cmd.MarkFlagRequired("restore")

	return cmd
}
