package restore

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/coldcellar/bitguard/internal/bitguard/blockio"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

type blockResult struct {
	order   int
	records []sidecar.InstructionRecord
	err     error
}

// Run walks a repair-instructions file, processing every record whose
// kind is targeted by cfg.RestoreMode against the backup data file
// (via backup) and backup checksum sidecar (via backupChecksum, whose
// header is backupHeader). Results keep the repair records' order:
// records outside the target set pass through unchanged (so the HIT
// records of a repair-side HIT+HIT? fan-out stay in place), while a
// targeted record is replaced by the records its search produces,
// which may be several. A record whose backup read or search fails is skipped, not
// fatal: the per-record errors come back joined so the task can exit
// non-zero after persisting what it did resolve.
func Run(cfg task.Config, repairRecords []sidecar.InstructionRecord, backup *blockio.Reader, backupChecksum io.ReaderAt, backupHeader sidecar.Header) ([]sidecar.InstructionRecord, error) {
	jobs := make(chan struct {
		order int
		rec   sidecar.InstructionRecord
	}, len(repairRecords))
	results := make(chan blockResult, len(repairRecords))

	var wg sync.WaitGroup
	numWorkers := runtime.NumCPU()
	if numWorkers > len(repairRecords) && len(repairRecords) > 0 {
		numWorkers = len(repairRecords)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				rec := job.rec
				if !targeted(cfg.RestoreMode, rec.Kind) {
					results <- blockResult{order: job.order, records: []sidecar.InstructionRecord{rec}}
					continue
				}

				y, err := backup.ReadBlock(rec.BlockIndex)
				if err != nil {
					results <- blockResult{order: job.order, err: fmt.Errorf("restore: reading backup block %d: %w", rec.BlockIndex, err)}
					continue
				}
				cb, err := sidecar.ReadDigestAt(backupChecksum, backupHeader, rec.BlockIndex)
				if err != nil {
					results <- blockResult{order: job.order, err: fmt.Errorf("restore: reading backup digest %d: %w", rec.BlockIndex, err)}
					continue
				}

				recs, err := Block(cfg, rec.BlockIndex, rec.Block, rec.Digest, y, cb)
				if err != nil {
					results <- blockResult{order: job.order, err: fmt.Errorf("restore: block %d: %w", rec.BlockIndex, err)}
					continue
				}
				results <- blockResult{order: job.order, records: recs}
			}
		}()
	}

	for i, rec := range repairRecords {
		jobs <- struct {
			order int
			rec   sidecar.InstructionRecord
		}{order: i, rec: rec}
	}
	close(jobs)

	wg.Wait()
	close(results)

	var errs []error
	byOrder := make(map[int][]sidecar.InstructionRecord, len(repairRecords))
	for res := range results {
		if res.err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn(res.err.Error())
			}
			errs = append(errs, res.err)
			continue
		}
		byOrder[res.order] = res.records
	}

	orders := make([]int, 0, len(byOrder))
	for o := range byOrder {
		orders = append(orders, o)
	}
	sort.Ints(orders)

	var out []sidecar.InstructionRecord
	for _, o := range orders {
		out = append(out, byOrder[o]...)
	}
	if cfg.Logger != nil {
		cfg.Logger.WithField("records", len(repairRecords)).Info("restore search complete")
	}
	return out, errors.Join(errs...)
}
