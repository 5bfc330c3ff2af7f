package search

import (
	"testing"

	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNoHits(t *testing.T) {
	recs := Classify(3, []byte{0xAA}, []byte{0xBB}, nil)
	require.Len(t, recs, 1)
	assert.Equal(t, sidecar.KindNoHits, recs[0].Kind)
	assert.Equal(t, uint64(3), recs[0].BlockIndex)
	assert.Equal(t, []byte{0xBB}, recs[0].Block)
	assert.Equal(t, []byte{0xAA}, recs[0].Digest)
}

func TestClassifySingleHit(t *testing.T) {
	hit := Candidate{Block: []byte{0x01}, Digest: []byte{0x02}, Distance: 5}
	recs := Classify(1, []byte{0xFF}, []byte{0xEE}, []Candidate{hit})
	require.Len(t, recs, 1)
	assert.Equal(t, sidecar.KindHitSure, recs[0].Kind)
	assert.Equal(t, hit.Block, recs[0].Block)
	assert.Equal(t, hit.Distance, recs[0].Distance)
}

func TestClassifyMultipleHitsProducesHitAndSummary(t *testing.T) {
	a := Candidate{Block: []byte{0x01}, Digest: []byte{0xAA}, Distance: 4}
	b := Candidate{Block: []byte{0x02}, Digest: []byte{0xBB}, Distance: 2}
	recs := Classify(0, []byte{0xFF}, []byte{0xEE}, []Candidate{a, b})

	require.Len(t, recs, 3)
	assert.Equal(t, sidecar.KindHit, recs[0].Kind)
	assert.Equal(t, sidecar.KindHit, recs[1].Kind)
	assert.Equal(t, sidecar.KindHitAmbi, recs[2].Kind)

	// the HIT? summary names the minimum-distance candidate.
	assert.Equal(t, b.Block, recs[2].Block)
	assert.Equal(t, b.Distance, recs[2].Distance)
	assert.Greater(t, recs[2].Ambival, uint64(0))
}
