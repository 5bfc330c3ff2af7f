package sidecar

import (
	"encoding/hex"
	"fmt"
	"io"
)

// WriteMismatchText appends a human-readable line mirroring a
// mismatch record to the advisory text twin file. Text twins are
// never parsed back.
func WriteMismatchText(w io.Writer, rec MismatchRecord) error {
	_, err := fmt.Fprintf(w, "block=%d given=%s computed=%s\n",
		rec.BlockIndex, hex.EncodeToString(rec.GivenDigest), hex.EncodeToString(rec.ComputedDigest))
	return err
}

// WriteInstructionText appends a human-readable line mirroring an
// instruction record to the advisory text twin file.
func WriteInstructionText(w io.Writer, rec InstructionRecord) error {
	_, err := fmt.Fprintf(w, "kind=%-8s block=%d len=%d dist=%d ambival=%d digest=%s\n",
		rec.Kind, rec.BlockIndex, rec.BlockLen, rec.Distance, rec.Ambival, hex.EncodeToString(rec.Digest))
	return err
}
