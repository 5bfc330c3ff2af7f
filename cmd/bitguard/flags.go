package main

import (
	"github.com/coldcellar/bitguard/internal/bitguard/task"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// taskFlags holds the --method/--redundancy/--bruteforce/--mode flags
// shared by every command that runs the search engines or builds a
// sidecar header from a chosen checksum method.
type taskFlags struct {
	method       string
	redundancy   uint32
	bruteRepair  uint64
	bruteRestore uint64
	restoreMode  string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.method, "method", "md5_32", "checksum method (md4, md5, sha256, crc32, md5_16, md5_32, md5_64)")
	cmd.Flags().Uint32Var(&f.redundancy, "redundancy", 32, "block bytes per checksum byte (power of two)")
	cmd.Flags().Uint64Var(&f.bruteRepair, "bruteforce-repair", 10000, "repair brute-force operation budget per block")
	cmd.Flags().Uint64Var(&f.bruteRestore, "bruteforce-restore", 10000, "restore brute-force operation budget per block")
	cmd.Flags().StringVar(&f.restoreMode, "mode", "all", "restore target mode: all, ambi_no, ambi_only")
	cmd.RegisterFlagCompletionFunc("method", methodCompletions)
	cmd.RegisterFlagCompletionFunc("mode", modeCompletions)
}

func (f *taskFlags) build() (task.Config, error) {
	cfg, err := task.New(f.method, f.redundancy, f.bruteRepair, f.bruteRestore)
	if err != nil {
		return task.Config{}, err
	}
	mode, err := task.ParseRestoreMode(f.restoreMode)
	if err != nil {
		return task.Config{}, err
	}
	cfg.RestoreMode = mode
	return cfg, nil
}

func newLogger() *logrus.Logger {
	return logrus.New()
}
