// Package blockio gives the repair and restore engines fixed-size
// block access to the large archival files they operate on, backed by
// a memory map the way keshon-bvc's block manager maps chunks before
// scanning them. Empty files, and any file mmap refuses to open, fall
// back to plain ReadAt.
package blockio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Reader serves fixed-width blocks from a file by index.
type Reader struct {
	blockBytes uint32
	size       int64

	mm       *mmap.ReaderAt
	fallback *os.File
}

// Open maps path for block-sized random access. blockBytes is the
// configured block size (B); the final block may be shorter when the
// file length is not a multiple of it.
func Open(path string, blockBytes uint32) (*Reader, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("blockio: stat %q: %w", path, err)
	}
	size := fi.Size()

	if size == 0 {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("blockio: open %q: %w", path, err)
		}
		return &Reader{blockBytes: blockBytes, size: 0, fallback: f}, nil
	}

	mm, err := mmap.Open(path)
	if err != nil {
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, fmt.Errorf("blockio: open %q: %w", path, ferr)
		}
		return &Reader{blockBytes: blockBytes, size: size, fallback: f}, nil
	}
	return &Reader{blockBytes: blockBytes, size: size, mm: mm}, nil
}

// Size returns the file length in bytes.
func (r *Reader) Size() int64 { return r.size }

// BlockBytes returns the configured block width B.
func (r *Reader) BlockBytes() uint32 { return r.blockBytes }

// NumBlocks returns the number of blocks the file splits into,
// rounding the final partial block up.
func (r *Reader) NumBlocks() uint64 {
	if r.size == 0 {
		return 0
	}
	return uint64((r.size + int64(r.blockBytes) - 1) / int64(r.blockBytes))
}

// ReadBlock returns block index's bytes. The final block may be
// shorter than BlockBytes. It returns io.EOF once index is past the
// end of the file.
func (r *Reader) ReadBlock(index uint64) ([]byte, error) {
	off := int64(index) * int64(r.blockBytes)
	if off >= r.size {
		return nil, io.EOF
	}
	length := int64(r.blockBytes)
	if off+length > r.size {
		length = r.size - off
	}
	buf := make([]byte, length)

	var n int
	var err error
	if r.mm != nil {
		n, err = r.mm.ReadAt(buf, off)
	} else {
		n, err = r.fallback.ReadAt(buf, off)
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("blockio: read block %d: %w", index, err)
	}
	return buf[:n], nil
}

// Close releases the map or the fallback file handle.
func (r *Reader) Close() error {
	if r.mm != nil {
		return r.mm.Close()
	}
	if r.fallback != nil {
		return r.fallback.Close()
	}
	return nil
}
