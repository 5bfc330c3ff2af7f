package sidecar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	// Write then read yields identical fields.
	h := Header{MethodName: "sha256", ChecksumBits: 256, BlockBytes: 8192}

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, h))
	assert.Equal(t, HeaderSize, buf.Len())

	got, warnings, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, h, got)
}

func TestHeaderSelfRepairsCorruptedChecksumBits(t *testing.T) {
	// Corrupting checksum_bits_B to a non-power-of-two value must
	// still yield the uncorrupted header, with exactly one warning
	// naming the repaired field.
	h := Header{MethodName: "sha256", ChecksumBits: 256, BlockBytes: 8192}
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, h))

	raw := buf.Bytes()
	raw[20] = 0xFF
	raw[21] = 0xFF
	raw[22] = 0xFF
	raw[23] = 0xFF

	got, warnings, err := ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, h, got)
}

func TestHeaderSelfRepairsEachFieldIndependently(t *testing.T) {
	h := Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 1024}

	corrupt := func(offset int, value byte) Header {
		var buf bytes.Buffer
		require.NoError(t, WriteHeader(&buf, h))
		raw := buf.Bytes()
		raw[offset] = value
		got, warnings, err := ReadHeader(bytes.NewReader(raw))
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		return got
	}

	// method_name_B's first byte corrupted to something unregistered.
	assert.Equal(t, h, corrupt(8, 'z'))
	// block_bytes_A corrupted to a non-power-of-two.
	assert.Equal(t, h, corrupt(24, 0x03))
}

func TestHeaderUnresolvableWhenBothCopiesInvalid(t *testing.T) {
	h := Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 1024}
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, h))
	raw := buf.Bytes()
	// Corrupt both copies of block_bytes to non-powers-of-two.
	raw[24], raw[25], raw[26], raw[27] = 3, 0, 0, 0
	raw[28], raw[29], raw[30], raw[31] = 5, 0, 0, 0

	_, _, err := ReadHeader(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrHeaderUnresolvable)
}

func TestHeaderUnresolvableOnShortRead(t *testing.T) {
	_, _, err := ReadHeader(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}
