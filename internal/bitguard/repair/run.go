package repair

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

type blockResult struct {
	blockIndex uint64
	records    []sidecar.InstructionRecord
	err        error
}

// Run searches every mismatched block in data concurrently, one
// worker pool entry per mismatch, and returns the instruction records
// in ascending block-index order regardless of the order the workers
// finish in. A block whose read or search fails is skipped, not fatal:
// the remaining blocks still get their records, and the accumulated
// per-block errors come back joined so the task can exit non-zero
// after persisting what it did resolve.
func Run(cfg task.Config, data *blockio.Reader, mismatches []sidecar.MismatchRecord) ([]sidecar.InstructionRecord, error) {
	jobs := make(chan sidecar.MismatchRecord, len(mismatches))
	results := make(chan blockResult, len(mismatches))

	var wg sync.WaitGroup
	numWorkers := runtime.NumCPU()
	if numWorkers > len(mismatches) && len(mismatches) > 0 {
		numWorkers = len(mismatches)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for mm := range jobs {
				x, err := data.ReadBlock(mm.BlockIndex)
				if err != nil {
					results <- blockResult{blockIndex: mm.BlockIndex, err: fmt.Errorf("repair: reading block %d: %w", mm.BlockIndex, err)}
					continue
				}
				recs, err := Block(cfg, mm.BlockIndex, x, mm.GivenDigest)
				if err != nil {
					results <- blockResult{blockIndex: mm.BlockIndex, err: fmt.Errorf("repair: block %d: %w", mm.BlockIndex, err)}
					continue
				}
				results <- blockResult{blockIndex: mm.BlockIndex, records: recs}
			}
		}()
	}

	for _, mm := range mismatches {
		jobs <- mm
	}
	close(jobs)

	wg.Wait()
	close(results)

	var errs []error
	byIndex := make(map[uint64][]sidecar.InstructionRecord, len(mismatches))
	for res := range results {
		if res.err != nil {
			if cfg.Logger != nil {
				cfg.Logger.WithField("block", res.blockIndex).Warn(res.err.Error())
			}
			errs = append(errs, res.err)
			continue
		}
		byIndex[res.blockIndex] = res.records
	}

	indices := make([]uint64, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	var out []sidecar.InstructionRecord
	for _, idx := range indices {
		out = append(out, byIndex[idx]...)
	}
	if cfg.Logger != nil {
		cfg.Logger.WithField("blocks", len(mismatches)).Info("repair search complete")
	}
	return out, errors.Join(errs...)
}
