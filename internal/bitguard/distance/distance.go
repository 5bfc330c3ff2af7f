// Package distance implements the weighted block+checksum distance
// function and the ambiguity score used to classify repair and restore
// hits.
package distance

import (
	"math"

	"github.com/coldcellar/bitguard/internal/bitguard/bitset"
)

// Weights carries the two calibration knobs the distance function
// needs: the checksum penalty P and the block/checksum size ratio
// (redundancy) R.
type Weights struct {
	Penalty    uint64
	Redundancy uint32
}

// Linear is the default distance function: the Hamming distance
// between the two blocks plus the checksum difference weighted by
// P*R. A flipped checksum bit is far less likely than a flipped block
// bit of independent physical origin, so checksum differences carry
// more weight, normalized by the block-to-checksum size ratio.
func Linear(blockA, blockB, digestA, digestB []byte, w Weights) (uint64, error) {
	bd, err := bitset.Distance(blockA, blockB)
	if err != nil {
		return 0, err
	}
	cd, err := bitset.Distance(digestA, digestB)
	if err != nil {
		return 0, err
	}
	return uint64(bd) + w.Penalty*uint64(w.Redundancy)*uint64(cd), nil
}

// Square weights both components quadratically before combining them.
func Square(blockA, blockB, digestA, digestB []byte, w Weights) (uint64, error) {
	bd, err := bitset.Distance(blockA, blockB)
	if err != nil {
		return 0, err
	}
	cd, err := bitset.Distance(digestA, digestB)
	if err != nil {
		return 0, err
	}
	return uint64(bd*bd) + w.Penalty*uint64(w.Redundancy)*uint64(cd*cd), nil
}

// Conservative takes the larger of the two weighted components rather
// than summing them, so a single badly-off component dominates.
func Conservative(blockA, blockB, digestA, digestB []byte, w Weights) (uint64, error) {
	bd, err := bitset.Distance(blockA, blockB)
	if err != nil {
		return 0, err
	}
	cd, err := bitset.Distance(digestA, digestB)
	if err != nil {
		return 0, err
	}
	weightedChecksum := w.Penalty * uint64(w.Redundancy) * uint64(cd)
	if uint64(bd) > weightedChecksum {
		return uint64(bd), nil
	}
	return weightedChecksum, nil
}

// ConservativeBiased is Conservative with a small additive bias toward
// the block component, for callers that would rather over-trust the
// block than the checksum when the two components are close.
func ConservativeBiased(blockA, blockB, digestA, digestB []byte, w Weights) (uint64, error) {
	d, err := Conservative(blockA, blockB, digestA, digestB, w)
	if err != nil {
		return 0, err
	}
	bd, err := bitset.Distance(blockA, blockB)
	if err != nil {
		return 0, err
	}
	return d + uint64(bd)/8, nil
}

// Ambival scores how close-running the top candidates are when n>1
// hits tie within tolerance. It is returned negated: a negative value
// is the engine's internal signal that the result is ambiguous (n>1),
// while its magnitude is what gets stored in the instruction record's
// ambival field. Larger magnitude means lower confidence in the
// minimum-distance candidate.
func Ambival(n int, distances []uint64) int64 {
	if n <= 1 {
		return 0
	}
	minDist := distances[0]
	sum := 0.0
	for _, d := range distances {
		if d < minDist {
			minDist = d
		}
		sum += float64(d)
	}
	avg := sum / float64(len(distances))
	min := float64(minDist)

	var score float64
	if avg > min {
		score = math.Round(100 * float64(n) * min / (avg - min))
	} else {
		score = 100 * float64(n) * min * 10000
	}
	return -int64(score)
}
