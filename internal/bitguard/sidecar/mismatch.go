package sidecar

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteMismatch appends one mismatch record: block_index:u64-LE,
// given_digest, computed_digest.
func WriteMismatch(w io.Writer, rec MismatchRecord) error {
	head := make([]byte, 8)
	binary.LittleEndian.PutUint64(head, rec.BlockIndex)
	if _, err := w.Write(head); err != nil {
		return err
	}
	if _, err := w.Write(rec.GivenDigest); err != nil {
		return err
	}
	if _, err := w.Write(rec.ComputedDigest); err != nil {
		return err
	}
	return nil
}

// ReadMismatch reads one mismatch record whose digests are
// digestBytes long. It returns io.EOF when there are no more
// records.
func ReadMismatch(r io.Reader, digestBytes int) (MismatchRecord, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r, head); err != nil {
		return MismatchRecord{}, err
	}
	given := make([]byte, digestBytes)
	if _, err := io.ReadFull(r, given); err != nil {
		return MismatchRecord{}, fmt.Errorf("sidecar: truncated mismatch record: %w", err)
	}
	computed := make([]byte, digestBytes)
	if _, err := io.ReadFull(r, computed); err != nil {
		return MismatchRecord{}, fmt.Errorf("sidecar: truncated mismatch record: %w", err)
	}
	return MismatchRecord{
		BlockIndex:     binary.LittleEndian.Uint64(head),
		GivenDigest:    given,
		ComputedDigest: computed,
	}, nil
}
