// Package repair implements the progressive dithered-bit search that
// reconstructs a block from its own corrupted digest alone, with no
// backup involved.
package repair

import (
	"github.com/coldcellar/bitguard/internal/bitguard/bitset"
	"github.com/coldcellar/bitguard/internal/bitguard/distance"
	"github.com/coldcellar/bitguard/internal/bitguard/search"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
)

// Block searches for reconstructions of one corrupted block x against
// its stored (and possibly itself corrupted) digest cGiven, trying
// wider dither frames until a round produces at least one hit, the
// configured width WRepair is exhausted, or the brute-force budget
// runs out. It returns the classified instruction records for this
// block, in ascending discovery order with any HIT? summary last.
func Block(cfg task.Config, blockIndex uint64, x, cGiven []byte) ([]sidecar.InstructionRecord, error) {
	lc := int(cfg.Widths.Lc)
	weights := cfg.DistanceWeights()

	var hits []search.Candidate
	count := uint64(0)

outer:
	for n := 0; n <= cfg.Widths.WRepair; n++ {
		var round []search.Candidate

		if n == 0 {
			if count >= cfg.BruteForceRepair {
				break outer
			}
			count++
			c := cfg.Method.Compute(x)
			d, err := bitset.Distance(c, cGiven)
			if err != nil {
				return nil, err
			}
			if d <= lc {
				dist, err := distance.Linear(x, x, cGiven, c, weights)
				if err != nil {
					return nil, err
				}
				round = append(round, search.Candidate{Block: x, Digest: c, Distance: dist})
			}
		} else {
			frames, err := bitset.Frames(n)
			if err != nil {
				return nil, err
			}
			maxPos := len(x)*8 - n
			for _, p := range frames {
				for i := 0; i <= maxPos; i++ {
					if count >= cfg.BruteForceRepair {
						break outer
					}
					count++
					xPrime := bitset.ApplyMaskAt(x, p, n, i)
					c := cfg.Method.Compute(xPrime)
					d, err := bitset.Distance(c, cGiven)
					if err != nil {
						return nil, err
					}
					if d <= lc {
						dist, err := distance.Linear(x, xPrime, cGiven, c, weights)
						if err != nil {
							return nil, err
						}
						round = append(round, search.Candidate{Block: xPrime, Digest: c, Distance: dist})
					}
				}
			}
		}

		if len(round) > 0 {
			hits = round
			break
		}
	}

	return search.Classify(blockIndex, cGiven, x, hits), nil
}
