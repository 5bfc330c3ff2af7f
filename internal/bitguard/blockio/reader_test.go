package blockio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestReaderSplitsFileIntoBlocks(t *testing.T) {
	content := bytes.Repeat([]byte{0x01}, 10)
	path := writeTempFile(t, content)

	r, err := Open(path, 4)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, int64(10), r.Size())
	assert.Equal(t, uint32(4), r.BlockBytes())
	assert.Equal(t, uint64(3), r.NumBlocks())

	b0, err := r.ReadBlock(0)
	require.NoError(t, err)
	assert.Len(t, b0, 4)

	// final block is short.
	b2, err := r.ReadBlock(2)
	require.NoError(t, err)
	assert.Len(t, b2, 2)
}

func TestReaderReturnsEOFPastEnd(t *testing.T) {
	path := writeTempFile(t, []byte{0x01, 0x02})
	r, err := Open(path, 4)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadBlock(5)
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderFallsBackOnEmptyFile(t *testing.T) {
	// An empty file takes the os.ReadAt fallback path rather than mmap
	// (which several platforms refuse for zero bytes).
	path := writeTempFile(t, nil)
	r, err := Open(path, 4)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, int64(0), r.Size())
	assert.Equal(t, uint64(0), r.NumBlocks())
}

func TestReaderExactMultipleOfBlockSize(t *testing.T) {
	content := bytes.Repeat([]byte{0xAB}, 8)
	path := writeTempFile(t, content)
	r, err := Open(path, 4)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, uint64(2), r.NumBlocks())
	b1, err := r.ReadBlock(1)
	require.NoError(t, err)
	assert.Equal(t, content[4:8], b1)
}
