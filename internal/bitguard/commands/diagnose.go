package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/coldcellar/bitguard/internal/bitguard/bitset"
	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Diagnose compares every block the repair/restore pipeline touched
// against the uncorrupted original, the backup, and the pre-repair
// corrupted file, and writes a side-by-side report to diagPath. It
// exists for test harnesses, never for a production run.
func Diagnose(cfg task.Config, originalPath, backupPath, corruptPath, repairPath, restorePath, diagPath string) (Summary, error) {
	repairHeader, repairRecords, err := readInstructions(repairPath)
	if err != nil {
		return Summary{}, fmt.Errorf("diagnose: reading repair instructions: %w", err)
	}
	_, restoreRecords, err := readInstructions(restorePath)
	if err != nil {
		return Summary{}, fmt.Errorf("diagnose: reading restore instructions: %w", err)
	}

	repairFinal := terminalByBlock(repairRecords)
	restoreFinal := terminalByBlock(restoreRecords)

	blocks := make(map[uint64]struct{}, len(repairFinal))
	for idx := range repairFinal {
		blocks[idx] = struct{}{}
	}
	for idx := range restoreFinal {
		blocks[idx] = struct{}{}
	}
	indices := make([]uint64, 0, len(blocks))
	for idx := range blocks {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	original, err := blockio.Open(originalPath, repairHeader.BlockBytes)
	if err != nil {
		return Summary{}, err
	}
	defer original.Close()
	backup, err := blockio.Open(backupPath, repairHeader.BlockBytes)
	if err != nil {
		return Summary{}, err
	}
	defer backup.Close()
	corrupt, err := blockio.Open(corruptPath, repairHeader.BlockBytes)
	if err != nil {
		return Summary{}, err
	}
	defer corrupt.Close()

	report, err := os.Create(diagPath)
	if err != nil {
		return Summary{}, err
	}
	defer report.Close()

	summary := Summary{Total: len(indices)}

	for _, idx := range indices {
		repairRec := repairFinal[idx]
		final, hasRestore := restoreFinal[idx]
		if !hasRestore {
			final = repairRec
		}

		origBlock, err := original.ReadBlock(idx)
		if err != nil {
			return Summary{}, err
		}
		backupBlock, err := backup.ReadBlock(idx)
		if err != nil {
			return Summary{}, err
		}
		corruptBlock, err := corrupt.ReadBlock(idx)
		if err != nil {
			return Summary{}, err
		}

		origCorrupt := distOrWarn(cfg, idx, "original<->corrupt", origBlock, corruptBlock)
		corruptRepair := distOrWarn(cfg, idx, "corrupt<->repair", corruptBlock, repairRec.Block)
		repairRestore := distOrWarn(cfg, idx, "repair<->restore", repairRec.Block, final.Block)
		origData := distOrWarn(cfg, idx, "original<->data", origBlock, final.Block)
		backupOrig := distOrWarn(cfg, idx, "backup<->original", backupBlock, origBlock)

		if origData == 0 {
			summary.OK++
			continue
		}

		status := "MISMATCH"
		if final.Kind == sidecar.KindHitAmbi {
			summary.Ambiguous++
			status = "AMBIGUOUS"
		} else {
			summary.Failed++
		}

		fmt.Fprintf(report,
			"block=%d status=%s repair_kind=%s repair_dist=%d repair_ambival=%d restore_kind=%s restore_dist=%d restore_ambival=%d orig<->corrupt=%d corrupt<->repair=%d repair<->restore=%d orig<->data=%d backup<->orig=%d\n",
			idx, status,
			repairRec.Kind, repairRec.Distance, repairRec.Ambival,
			final.Kind, final.Distance, final.Ambival,
			origCorrupt, corruptRepair, repairRestore, origData, backupOrig,
		)
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(map[string]interface{}{
			"ok": summary.OK, "ambiguous": summary.Ambiguous, "failed": summary.Failed, "total": summary.Total,
		}).Info("diagnose complete")
	}
	return summary, nil
}

// distOrWarn returns the Hamming distance between a and b, or -1 and
// a logged warning if their lengths disagree (e.g. one side is a
// BLENGTH? record's untouched block).
func distOrWarn(cfg task.Config, block uint64, label string, a, b []byte) int {
	d, err := bitset.Distance(a, b)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithField("block", block).Warn("diagnose: " + label + ": " + err.Error())
		}
		return -1
	}
	return d
}

func readInstructions(path string) (sidecar.Header, []sidecar.InstructionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return sidecar.Header{}, nil, err
	}
	defer f.Close()

	h, _, err := sidecar.ReadHeader(f)
	if err != nil {
		return sidecar.Header{}, nil, err
	}

	digestBytes := int(h.ChecksumBits / 8)
	var records []sidecar.InstructionRecord
	for {
		rec, err := sidecar.ReadInstruction(f, digestBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return sidecar.Header{}, nil, err
		}
		records = append(records, rec)
	}
	return h, records, nil
}

// terminalByBlock keeps only the last record seen per block index,
// which is always the terminal one per the ordering guarantee that
// HIT records precede their HIT?/HIT!/NOHITS summary.
func terminalByBlock(records []sidecar.InstructionRecord) map[uint64]sidecar.InstructionRecord {
	m := make(map[uint64]sidecar.InstructionRecord, len(records))
	for _, rec := range records {
		m[rec.BlockIndex] = rec
	}
	return m
}
