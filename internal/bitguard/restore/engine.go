// Package restore implements the difference-mask, transition-ordered
// search that reconciles a repair-stage record against the backup
// data and backup checksum when the data side alone couldn't resolve
// it unambiguously.
package restore

import (
	"bytes"

	"github.com/coldcellar/bitguard/internal/bitguard/bitset"
	"github.com/coldcellar/bitguard/internal/bitguard/distance"
	"github.com/coldcellar/bitguard/internal/bitguard/search"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// targeted reports whether a repair-stage record's kind is one the
// given mode selects for restore processing. Records outside the
// target set pass through to the restore-instructions output
// unchanged, so a downstream execute pass that only reads the
// restore output still sees every block's instruction.
func targeted(mode task.RestoreMode, kind sidecar.Kind) bool {
	switch kind {
	case sidecar.KindNoHits, sidecar.KindBLength, sidecar.KindCLength, sidecar.KindTamper:
		return mode == task.ModeAll || mode == task.ModeAmbiNo
	case sidecar.KindHitAmbi:
		return mode == task.ModeAll || mode == task.ModeAmbiOnly
	default: // HIT!, HIT: repair already resolved these decisively.
		return false
	}
}

// Block reconciles one repair record against the backup block y and
// backup digest cb. x and c are the block and digest the repair record
// carried forward (the corrupted data block for NOHITS, or the
// minimum-distance candidate for HIT?).
func Block(cfg task.Config, blockIndex uint64, x, c, y, cb []byte) ([]sidecar.InstructionRecord, error) {
	if len(x) != len(y) {
		return []sidecar.InstructionRecord{{
			Kind:       sidecar.KindBLength,
			BlockIndex: blockIndex,
			BlockLen:   uint64(len(x)),
			Digest:     c,
			Block:      x,
		}}, nil
	}
	if len(c) != len(cb) {
		return []sidecar.InstructionRecord{{
			Kind:       sidecar.KindCLength,
			BlockIndex: blockIndex,
			BlockLen:   uint64(len(x)),
			Digest:     c,
			Block:      x,
		}}, nil
	}

	_, positions, err := bitset.DifferenceMask(x, y)
	if err != nil {
		return nil, err
	}
	d := len(positions)
	lc := int(cfg.Widths.Lc)
	weights := cfg.DistanceWeights()

	var hits []search.Candidate

	switch {
	case d == 0:
		if cfg.BruteForceRestore > 0 {
			cPrime := cfg.Method.Compute(x)
			d1, err := bitset.Distance(cPrime, c)
			if err != nil {
				return nil, err
			}
			d2, err := bitset.Distance(cPrime, cb)
			if err != nil {
				return nil, err
			}
			if d1 < lc || d2 < lc {
				dist, err := distance.Linear(x, x, c, cPrime, weights)
				if err != nil {
					return nil, err
				}
				hits = append(hits, search.Candidate{Block: x, Digest: cPrime, Distance: dist})
			}
		}

	case d > cfg.Widths.WRestore:
		cy := cfg.Method.Compute(y)
		if bytes.Equal(cy, c) {
			dist, err := distance.Linear(x, y, c, cy, weights)
			if err != nil {
				return nil, err
			}
			hits = append(hits, search.Candidate{Block: y, Digest: cy, Distance: dist})
		} else if cfg.Logger != nil {
			cfg.Logger.WithField("block", blockIndex).
				Warn("restore: difference too wide for transition search and backup digest does not confirm it")
		}

	default:
		count := uint64(0)
		err := bitset.EnumerateTransitions(d, func(assignment []bool) bool {
			if count >= cfg.BruteForceRestore {
				return false
			}
			count++
			candidate := applyAssignment(x, positions, assignment)
			cCandidate := cfg.Method.Compute(candidate)
			d1, derr := bitset.Distance(cCandidate, c)
			if derr != nil {
				return false
			}
			d2, derr := bitset.Distance(cCandidate, cb)
			if derr != nil {
				return false
			}
			if d1 < lc || d2 < lc {
				dist, derr := distance.Linear(x, candidate, c, cCandidate, weights)
				if derr == nil {
					hits = append(hits, search.Candidate{Block: candidate, Digest: cCandidate, Distance: dist})
				}
			}
			return count < cfg.BruteForceRestore
		})
		if err != nil {
			return nil, err
		}
	}

	return search.Classify(blockIndex, c, x, hits), nil
}

// applyAssignment starts from x and, for every position where
// assignment is true, flips that bit to match y. assignment encodes,
// per differing position, which of the two blocks' bits is believed
// to be the original.
func applyAssignment(x []byte, positions []int, assignment []bool) []byte {
	out := append([]byte(nil), x...)
	for i, flip := range assignment {
		if flip {
			pos := positions[i]
			out[pos/8] ^= 1 << (pos % 8)
		}
	}
	return out
}
