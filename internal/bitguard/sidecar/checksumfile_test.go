package sidecar

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumWriterReaderRoundTrip(t *testing.T) {
	h := Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 128}

	var buf bytes.Buffer
	cw, err := NewChecksumWriter(&buf, h)
	require.NoError(t, err)

	digests := [][]byte{
		{0x01, 0x02, 0x03, 0x04},
		{0x05, 0x06, 0x07, 0x08},
		{0x09, 0x0A, 0x0B, 0x0C},
	}
	for _, d := range digests {
		require.NoError(t, cw.Append(d))
	}

	cr, err := NewChecksumReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, cr.Header)
	assert.Empty(t, cr.Warnings)

	for _, want := range digests {
		got, err := cr.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = cr.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestChecksumWriterRejectsWrongWidth(t *testing.T) {
	h := Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 128}
	var buf bytes.Buffer
	cw, err := NewChecksumWriter(&buf, h)
	require.NoError(t, err)

	err = cw.Append([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestReadDigestAtLooksUpByBlockIndex(t *testing.T) {
	h := Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 128}
	var buf bytes.Buffer
	cw, err := NewChecksumWriter(&buf, h)
	require.NoError(t, err)

	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	require.NoError(t, cw.Append([]byte{0x00, 0x00, 0x00, 0x00}))
	require.NoError(t, cw.Append(want))
	require.NoError(t, cw.Append([]byte{0x11, 0x11, 0x11, 0x11}))

	r := bytes.NewReader(buf.Bytes())
	got, err := ReadDigestAt(r, h, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
