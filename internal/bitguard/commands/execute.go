package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Execute reads the instruction file at instructionsPath, applies
// every HIT! and HIT? record to dataPath in place, and leaves every
// other kind untouched (informational only). A write failure on one
// record is logged and skipped without rolling back records already
// applied.
func Execute(cfg task.Config, dataPath, instructionsPath string) (Summary, error) {
	instrFile, err := os.Open(instructionsPath)
	if err != nil {
		return Summary{}, err
	}
	defer instrFile.Close()

	h, warnings, err := sidecar.ReadHeader(instrFile)
	if err != nil {
		return Summary{}, fmt.Errorf("execute: %w", err)
	}
	for _, w := range warnings {
		if cfg.Logger != nil {
			cfg.Logger.Warn("execute: instruction sidecar header: " + w)
		}
	}

	data, err := os.OpenFile(dataPath, os.O_RDWR, 0)
	if err != nil {
		return Summary{}, err
	}
	defer data.Close()

	digestBytes := int(h.ChecksumBits / 8)
	summary := Summary{}

	for {
		rec, err := sidecar.ReadInstruction(instrFile, digestBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Summary{}, err
		}
		summary.Total++

		switch rec.Kind {
		case sidecar.KindHitSure, sidecar.KindHitAmbi:
			off := int64(rec.BlockIndex) * int64(h.BlockBytes)
			if _, werr := data.WriteAt(rec.Block, off); werr != nil {
				summary.Failed++
				if cfg.Logger != nil {
					cfg.Logger.WithField("block", rec.BlockIndex).Warn("execute: write failed, record skipped: " + werr.Error())
				}
				continue
			}
			if rec.Kind == sidecar.KindHitSure {
				summary.OK++
			} else {
				summary.Ambiguous++
			}
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(map[string]interface{}{
			"applied": summary.OK + summary.Ambiguous, "failed": summary.Failed, "total": summary.Total,
		}).Info("execute complete")
	}
	return summary, nil
}
