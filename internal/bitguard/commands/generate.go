// Package commands wires the checksum, bitset, distance, calibrate,
// task, sidecar, blockio, repair and restore packages into the six
// task-level operations a run actually invokes: generate, verify,
// repair, restore, execute and diagnose.
package commands

import (
	"os"

	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Summary is the OK/ambiguous/failed/total tally every task-level
// command reports, per the error-handling design's diagnostic policy.
type Summary struct {
	OK        int
	Ambiguous int
	Failed    int
	Total     int
}

func header(cfg task.Config) sidecar.Header {
	return sidecar.Header{
		MethodName:   cfg.Method.Name,
		ChecksumBits: cfg.Method.DigestBits,
		BlockBytes:   cfg.BlockBytes,
	}
}

// Generate reads dataPath in B-byte blocks and writes a checksum
// sidecar to checksumPath, one digest per block, in block order.
func Generate(cfg task.Config, dataPath, checksumPath string) (Summary, error) {
	data, err := blockio.Open(dataPath, cfg.BlockBytes)
	if err != nil {
		return Summary{}, err
	}
	defer data.Close()

	out, err := os.Create(checksumPath)
	if err != nil {
		return Summary{}, err
	}
	defer out.Close()

	cw, err := sidecar.NewChecksumWriter(out, header(cfg))
	if err != nil {
		return Summary{}, err
	}

	numBlocks := data.NumBlocks()
	for i := uint64(0); i < numBlocks; i++ {
		block, err := data.ReadBlock(i)
		if err != nil {
			return Summary{}, err
		}
		if err := cw.Append(cfg.Method.Compute(block)); err != nil {
			return Summary{}, err
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(map[string]interface{}{
			"blocks": numBlocks,
			"method": cfg.Method.Name,
		}).Info("generate complete")
	}

	return Summary{OK: int(numBlocks), Total: int(numBlocks)}, nil
}
