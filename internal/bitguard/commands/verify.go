package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/checksum"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Verify reads dataPath and the checksum sidecar at checksumPath in
// lockstep. The sidecar's own self-healing header determines the
// method and block size used to re-derive digests, since that is the
// whole point of carrying them redundantly on disk rather than
// trusting the caller's flags to agree. On each mismatch it appends a
// MismatchRecord to errorPath (plus its text twin) and returns the
// full mismatch list for a downstream repair run.
func Verify(cfg task.Config, dataPath, checksumPath, errorPath string) (Summary, []sidecar.MismatchRecord, error) {
	checksumFile, err := os.Open(checksumPath)
	if err != nil {
		return Summary{}, nil, err
	}
	defer checksumFile.Close()

	cr, err := sidecar.NewChecksumReader(checksumFile)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("verify: %w", err)
	}
	for _, w := range cr.Warnings {
		if cfg.Logger != nil {
			cfg.Logger.Warn("verify: checksum sidecar header: " + w)
		}
	}

	method, err := checksum.ByName(cr.Header.MethodName)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("verify: %w", err)
	}

	data, err := blockio.Open(dataPath, cr.Header.BlockBytes)
	if err != nil {
		return Summary{}, nil, err
	}
	defer data.Close()

	errOut, err := os.Create(errorPath)
	if err != nil {
		return Summary{}, nil, err
	}
	defer errOut.Close()
	if err := sidecar.WriteHeader(errOut, cr.Header); err != nil {
		return Summary{}, nil, err
	}

	textOut, err := os.Create(errorPath + ".txt")
	if err != nil {
		return Summary{}, nil, err
	}
	defer textOut.Close()

	var mismatches []sidecar.MismatchRecord
	var blockErrs []error
	numBlocks := data.NumBlocks()
	summary := Summary{Total: int(numBlocks)}

	for i := uint64(0); i < numBlocks; i++ {
		given, err := cr.Next()
		if err != nil {
			return Summary{}, nil, fmt.Errorf("verify: reading digest for block %d: %w", i, err)
		}
		block, err := data.ReadBlock(i)
		if err != nil {
			// a block the data file won't yield is skipped, not fatal;
			// the digest stream stays in lockstep either way.
			if cfg.Logger != nil {
				cfg.Logger.WithField("block", i).Warn("verify: " + err.Error())
			}
			blockErrs = append(blockErrs, fmt.Errorf("verify: reading block %d: %w", i, err))
			continue
		}
		computed := method.Compute(block)

		if string(given) == string(computed) {
			summary.OK++
			continue
		}

		summary.Failed++
		rec := sidecar.MismatchRecord{BlockIndex: i, GivenDigest: given, ComputedDigest: computed}
		mismatches = append(mismatches, rec)
		if err := sidecar.WriteMismatch(errOut, rec); err != nil {
			return Summary{}, nil, err
		}
		if err := sidecar.WriteMismatchText(textOut, rec); err != nil {
			return Summary{}, nil, err
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(map[string]interface{}{
			"blocks":     summary.Total,
			"mismatches": summary.Failed,
		}).Info("verify complete")
	}

	return summary, mismatches, errors.Join(blockErrs...)
}
