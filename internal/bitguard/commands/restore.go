package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/restore"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Restore reads the repair-instructions file at repairPath, resolves
// every record cfg.RestoreMode targets against backupDataPath and
// backupChecksumPath, and writes the (possibly reclassified, possibly
// merely passed through) records to restorePath.
func Restore(cfg task.Config, repairPath, backupDataPath, backupChecksumPath, restorePath string) (Summary, []sidecar.InstructionRecord, error) {
	repairFile, err := os.Open(repairPath)
	if err != nil {
		return Summary{}, nil, err
	}
	defer repairFile.Close()

	repairHeader, warnings, err := sidecar.ReadHeader(repairFile)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("restore: %w", err)
	}
	for _, w := range warnings {
		if cfg.Logger != nil {
			cfg.Logger.Warn("restore: repair sidecar header: " + w)
		}
	}

	digestBytes := int(repairHeader.ChecksumBits / 8)
	var repairRecords []sidecar.InstructionRecord
	for {
		rec, err := sidecar.ReadInstruction(repairFile, digestBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Summary{}, nil, err
		}
		repairRecords = append(repairRecords, rec)
	}

	backupData, err := blockio.Open(backupDataPath, repairHeader.BlockBytes)
	if err != nil {
		return Summary{}, nil, err
	}
	defer backupData.Close()

	backupChecksumFile, err := os.Open(backupChecksumPath)
	if err != nil {
		return Summary{}, nil, err
	}
	defer backupChecksumFile.Close()

	backupHeader, bWarnings, err := sidecar.ReadHeader(backupChecksumFile)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("restore: %w", err)
	}
	for _, w := range bWarnings {
		if cfg.Logger != nil {
			cfg.Logger.Warn("restore: backup checksum sidecar header: " + w)
		}
	}

	records, runErr := restore.Run(cfg, repairRecords, backupData, backupChecksumFile, backupHeader)

	if err := writeInstructions(repairHeader, records, restorePath); err != nil {
		return Summary{}, nil, err
	}

	summary := tally(records, len(repairRecords))
	if cfg.Logger != nil {
		cfg.Logger.WithFields(map[string]interface{}{
			"ok": summary.OK, "ambiguous": summary.Ambiguous, "failed": summary.Failed, "total": summary.Total,
		}).Info("restore complete")
	}
	return summary, records, runErr
}
