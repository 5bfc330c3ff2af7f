package sidecar

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionRoundTrip(t *testing.T) {
	rec := InstructionRecord{
		Kind:       KindHitSure,
		BlockIndex: 42,
		BlockLen:   4,
		Distance:   3,
		Ambival:    0,
		Digest:     []byte{0x01, 0x02, 0x03, 0x04},
		Block:      []byte{0xAA, 0xBB, 0xCC, 0xDD},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInstruction(&buf, rec))

	got, err := ReadInstruction(&buf, 4)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestInstructionReadReturnsEOFAtEnd(t *testing.T) {
	var buf bytes.Buffer
	_, err := ReadInstruction(&buf, 4)
	require.ErrorIs(t, err, io.EOF)
}

func TestInstructionLegacyTamperSpellingNormalizes(t *testing.T) {
	rec := InstructionRecord{
		Kind:       Kind("TAMPER"),
		BlockIndex: 1,
		BlockLen:   2,
		Digest:     []byte{0x00, 0x00},
		Block:      []byte{0x01, 0x02},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteInstruction(&buf, rec))

	got, err := ReadInstruction(&buf, 2)
	require.NoError(t, err)
	assert.Equal(t, KindTamper, got.Kind)
}

func TestInstructionWithZeroBlockLen(t *testing.T) {
	rec := InstructionRecord{
		Kind:       KindBLength,
		BlockIndex: 7,
		BlockLen:   0,
		Digest:     []byte{0xFF},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteInstruction(&buf, rec))

	got, err := ReadInstruction(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, KindBLength, got.Kind)
	assert.Empty(t, got.Block)
}

func TestMultipleInstructionsPreserveOrder(t *testing.T) {
	var buf bytes.Buffer
	for i := uint64(0); i < 3; i++ {
		rec := InstructionRecord{
			Kind:       KindHit,
			BlockIndex: i,
			BlockLen:   1,
			Digest:     []byte{byte(i)},
			Block:      []byte{byte(i + 10)},
		}
		require.NoError(t, WriteInstruction(&buf, rec))
	}

	for i := uint64(0); i < 3; i++ {
		got, err := ReadInstruction(&buf, 1)
		require.NoError(t, err)
		assert.Equal(t, i, got.BlockIndex)
	}
	_, err := ReadInstruction(&buf, 1)
	require.ErrorIs(t, err, io.EOF)
}
