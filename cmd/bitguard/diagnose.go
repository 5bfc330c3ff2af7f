package main

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
	"github.com/spf13/cobra"
)

// NewDiagnoseCommand creates the 'diagnose' command for the CLI. It
// is a test-harness tool, not part of a production run.
func NewDiagnoseCommand() *cobra.Command {
	var originalPath, backupPath, corruptPath, repairPath, restorePath, diagPath string

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Compare repair/restore results against a known-good original.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := task.Config{Logger: newLogger()}
			summary, err := commands.Diagnose(cfg, originalPath, backupPath, corruptPath, repairPath, restorePath, diagPath)
			if err != nil {
				return err
			}
			fmt.Printf("diagnosed %d blocks: %d ok, %d ambiguous, %d failed\n",
				summary.Total, summary.OK, summary.Ambiguous, summary.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&originalPath, "orig", "", "path to the uncorrupted original file")
	cmd.Flags().StringVar(&backupPath, "backup", "", "path to the backup file")
	cmd.Flags().StringVar(&corruptPath, "corrupt", "", "path to the pre-repair corrupted file")
	cmd.Flags().StringVar(&repairPath, "repair", "", "path to the repair-instructions sidecar")
	cmd.Flags().StringVar(&restorePath, "restore", "", "path to the restore-instructions sidecar")
	cmd.Flags().StringVar(&diagPath, "diag", "", "path to write the diagnostic report")
	cmd.MarkFlagRequired("orig")
	cmd.MarkFlagRequired("backup")
	cmd.MarkFlagRequired("corrupt")
	cmd.MarkFlagRequired("repair")
	cmd.MarkFlagRequired("restore")
	cmd.MarkFlagRequired("diag")

	return cmd
}
