package sidecar

import (
	"fmt"
	"io"
)

// ChecksumWriter appends digests to a checksum sidecar, one per
// block, in block order, after a header has already been written.
type ChecksumWriter struct {
	w           io.Writer
	digestBytes int
}

// NewChecksumWriter writes the header for a checksum sidecar and
// returns a writer for the dense digest stream that follows it.
func NewChecksumWriter(w io.Writer, h Header) (*ChecksumWriter, error) {
	if err := WriteHeader(w, h); err != nil {
		return nil, err
	}
	return &ChecksumWriter{w: w, digestBytes: int(h.ChecksumBits / 8)}, nil
}

// Append writes one block's digest. digest must be digestBytes long.
func (cw *ChecksumWriter) Append(digest []byte) error {
	if len(digest) != cw.digestBytes {
		return fmt.Errorf("sidecar: digest length %d does not match header width %d", len(digest), cw.digestBytes)
	}
	_, err := cw.w.Write(digest)
	return err
}

// ChecksumReader reads a checksum sidecar's header and then its
// dense digest stream in block order.
type ChecksumReader struct {
	r           io.Reader
	digestBytes int
	Header      Header
	Warnings    []string
}

// NewChecksumReader reads and reconciles the header of a checksum
// sidecar, returning a reader positioned at the start of its digest
// stream.
func NewChecksumReader(r io.Reader) (*ChecksumReader, error) {
	h, warnings, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	return &ChecksumReader{r: r, digestBytes: int(h.ChecksumBits / 8), Header: h, Warnings: warnings}, nil
}

// Next reads the next digest in block order, returning io.EOF once
// the stream is exhausted.
func (cr *ChecksumReader) Next() ([]byte, error) {
	digest := make([]byte, cr.digestBytes)
	if _, err := io.ReadFull(cr.r, digest); err != nil {
		return nil, err
	}
	return digest, nil
}

// ReadDigestAt looks up a single block's digest by index without
// walking the stream, for callers (restore) that need the backup
// checksum for one block at a time in no particular order.
func ReadDigestAt(r io.ReaderAt, h Header, blockIndex uint64) ([]byte, error) {
	digestBytes := int64(h.ChecksumBits / 8)
	off := int64(HeaderSize) + int64(blockIndex)*digestBytes
	digest := make([]byte, digestBytes)
	if _, err := r.ReadAt(digest, off); err != nil {
		return nil, fmt.Errorf("sidecar: reading backup digest for block %d: %w", blockIndex, err)
	}
	return digest, nil
}
