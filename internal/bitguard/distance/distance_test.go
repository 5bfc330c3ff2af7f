package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	w := Weights{Penalty: 1, Redundancy: 32}

	t.Run("identical pairs have zero distance", func(t *testing.T) {
		block := []byte{0xAA, 0xBB}
		digest := []byte{0x01}
		d, err := Linear(block, block, digest, digest, w)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), d)
	})

	t.Run("weighs checksum bits by penalty times redundancy", func(t *testing.T) {
		blockA := []byte{0x00}
		blockB := []byte{0x00} // no block difference
		digestA := []byte{0x00}
		digestB := []byte{0x01} // one differing checksum bit
		d, err := Linear(blockA, blockB, digestA, digestB, w)
		require.NoError(t, err)
		assert.Equal(t, uint64(32), d) // 0 + 1*32*1
	})

	t.Run("propagates length mismatches", func(t *testing.T) {
		_, err := Linear([]byte{0x00}, []byte{0x00, 0x00}, []byte{0x00}, []byte{0x00}, w)
		require.Error(t, err)
	})
}

func TestAmbivalIsZeroForAtMostOneHit(t *testing.T) {
	assert.Zero(t, Ambival(0, nil))
	assert.Zero(t, Ambival(1, []uint64{5}))
}

func TestAmbivalIsNegativeAndLargerWhenCandidatesAreCloser(t *testing.T) {
	// Two candidates tied exactly: falls into the avg == min branch.
	tied := Ambival(2, []uint64{10, 10})
	assert.Less(t, tied, int64(0))

	// Candidates spread apart: smaller magnitude than the tied case.
	spread := Ambival(2, []uint64{10, 1000})
	assert.Less(t, spread, int64(0))

	assert.Greater(t, -tied, -spread, "closer-running candidates should score a larger ambival magnitude")
}
