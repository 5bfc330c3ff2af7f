package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/repair"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Repair reads the mismatch records at errorPath, searches each
// mismatched block against dataPath, and writes the classified
// instruction records (plus their text twin) to repairPath.
func Repair(cfg task.Config, dataPath, errorPath, repairPath string) (Summary, []sidecar.InstructionRecord, error) {
	errFile, err := os.Open(errorPath)
	if err != nil {
		return Summary{}, nil, err
	}
	defer errFile.Close()

	errHeader, warnings, err := sidecar.ReadHeader(errFile)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("repair: %w", err)
	}
	for _, w := range warnings {
		if cfg.Logger != nil {
			cfg.Logger.Warn("repair: error sidecar header: " + w)
		}
	}
	if errHeader.MethodName != cfg.Method.Name || errHeader.BlockBytes != cfg.BlockBytes {
		return Summary{}, nil, fmt.Errorf("repair: error sidecar method/block size (%s, %d) does not match configured task (%s, %d)",
			errHeader.MethodName, errHeader.BlockBytes, cfg.Method.Name, cfg.BlockBytes)
	}

	digestBytes := int(errHeader.ChecksumBits / 8)
	var mismatches []sidecar.MismatchRecord
	for {
		rec, err := sidecar.ReadMismatch(errFile, digestBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Summary{}, nil, err
		}
		mismatches = append(mismatches, rec)
	}

	data, err := blockio.Open(dataPath, cfg.BlockBytes)
	if err != nil {
		return Summary{}, nil, err
	}
	defer data.Close()

	records, runErr := repair.Run(cfg, data, mismatches)

	if err := writeInstructions(header(cfg), records, repairPath); err != nil {
		return Summary{}, nil, err
	}

	summary := tally(records, len(mismatches))
	if cfg.Logger != nil {
		cfg.Logger.WithFields(map[string]interface{}{
			"ok": summary.OK, "ambiguous": summary.Ambiguous, "failed": summary.Failed, "total": summary.Total,
		}).Info("repair complete")
	}
	return summary, records, runErr
}

// writeInstructions writes a sidecar header plus every instruction
// record to path, and a matching human-readable twin to path+".txt".
func writeInstructions(h sidecar.Header, records []sidecar.InstructionRecord, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := sidecar.WriteHeader(out, h); err != nil {
		return err
	}

	textOut, err := os.Create(path + ".txt")
	if err != nil {
		return err
	}
	defer textOut.Close()

	for _, rec := range records {
		if err := sidecar.WriteInstruction(out, rec); err != nil {
			return err
		}
		if err := sidecar.WriteInstructionText(textOut, rec); err != nil {
			return err
		}
	}
	return nil
}
