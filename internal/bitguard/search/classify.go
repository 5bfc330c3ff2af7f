// Package search holds the hit classification shared by the repair and
// restore engines: both brute-force search a candidate set and then
// collapse it into NOHITS / HIT! / HIT+HIT? instruction records the
// same way.
package search

import (
	"github.com/coldcellar/bitguard/internal/bitguard/distance"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
)

// Candidate is one accepted reconstruction: a block, its digest, and
// its distance from the corrupted input this search started from.
type Candidate struct {
	Block    []byte
	Digest   []byte
	Distance uint64
}

// Classify turns a block's accepted candidate set into instruction
// records: zero hits becomes a single NOHITS record carrying the
// original (block, digest); one hit becomes a single HIT! record;
// more than one becomes one HIT record per candidate plus a HIT?
// summary naming the minimum-distance candidate and its ambival
// score.
func Classify(blockIndex uint64, fallbackDigest, fallbackBlock []byte, hits []Candidate) []sidecar.InstructionRecord {
	switch len(hits) {
	case 0:
		return []sidecar.InstructionRecord{{
			Kind:       sidecar.KindNoHits,
			BlockIndex: blockIndex,
			BlockLen:   uint64(len(fallbackBlock)),
			Digest:     fallbackDigest,
			Block:      fallbackBlock,
		}}
	case 1:
		h := hits[0]
		return []sidecar.InstructionRecord{{
			Kind:       sidecar.KindHitSure,
			BlockIndex: blockIndex,
			BlockLen:   uint64(len(h.Block)),
			Distance:   h.Distance,
			Digest:     h.Digest,
			Block:      h.Block,
		}}
	default:
		records := make([]sidecar.InstructionRecord, 0, len(hits)+1)
		dists := make([]uint64, len(hits))
		best := hits[0]
		for i, h := range hits {
			dists[i] = h.Distance
			if h.Distance < best.Distance {
				best = h
			}
			records = append(records, sidecar.InstructionRecord{
				Kind:       sidecar.KindHit,
				BlockIndex: blockIndex,
				BlockLen:   uint64(len(h.Block)),
				Distance:   h.Distance,
				Digest:     h.Digest,
				Block:      h.Block,
			})
		}
		ambivalSigned := distance.Ambival(len(hits), dists)
		records = append(records, sidecar.InstructionRecord{
			Kind:       sidecar.KindHitAmbi,
			BlockIndex: blockIndex,
			BlockLen:   uint64(len(best.Block)),
			Distance:   best.Distance,
			Ambival:    uint64(-ambivalSigned),
			Digest:     best.Digest,
			Block:      best.Block,
		})
		return records
	}
}
