package sidecar

import (
	"encoding/binary"
	"fmt"
	"io"
)

const instructionHeadSize = 40 // kind(8) + block_index(8) + block_len(8) + distance(8) + ambival(8)

// WriteInstruction appends one repair/restore instruction record.
func WriteInstruction(w io.Writer, rec InstructionRecord) error {
	head := make([]byte, instructionHeadSize)
	copy(head[0:8], []byte(rec.Kind))
	binary.LittleEndian.PutUint64(head[8:16], rec.BlockIndex)
	binary.LittleEndian.PutUint64(head[16:24], rec.BlockLen)
	binary.LittleEndian.PutUint64(head[24:32], rec.Distance)
	binary.LittleEndian.PutUint64(head[32:40], rec.Ambival)
	if _, err := w.Write(head); err != nil {
		return err
	}
	if _, err := w.Write(rec.Digest); err != nil {
		return err
	}
	if rec.BlockLen > 0 {
		if _, err := w.Write(rec.Block); err != nil {
			return err
		}
	}
	return nil
}

// ReadInstruction reads one instruction record whose digest is
// digestBytes long. It returns io.EOF when there are no more
// records.
func ReadInstruction(r io.Reader, digestBytes int) (InstructionRecord, error) {
	head := make([]byte, instructionHeadSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return InstructionRecord{}, err
	}

	kind := Kind(trimNulls(head[0:8])).normalize()
	blockIndex := binary.LittleEndian.Uint64(head[8:16])
	blockLen := binary.LittleEndian.Uint64(head[16:24])
	distance := binary.LittleEndian.Uint64(head[24:32])
	ambival := binary.LittleEndian.Uint64(head[32:40])

	digest := make([]byte, digestBytes)
	if _, err := io.ReadFull(r, digest); err != nil {
		return InstructionRecord{}, fmt.Errorf("sidecar: truncated instruction digest: %w", err)
	}

	var block []byte
	if blockLen > 0 {
		block = make([]byte, blockLen)
		if _, err := io.ReadFull(r, block); err != nil {
			return InstructionRecord{}, fmt.Errorf("sidecar: truncated instruction block: %w", err)
		}
	}

	return InstructionRecord{
		Kind:       kind,
		BlockIndex: blockIndex,
		BlockLen:   blockLen,
		Distance:   distance,
		Ambival:    ambival,
		Digest:     digest,
		Block:      block,
	}, nil
}

func trimNulls(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}
