// Package sidecar implements the binary side-car file formats: the
// 32-byte self-redundant header every non-data sidecar begins with,
// the checksum/mismatch/instruction record codecs, and their
// human-readable text twins.
package sidecar

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/coldcellar/bitguard/internal/bitguard/checksum"
)

// HeaderSize is the fixed size, in bytes, of every sidecar header.
const HeaderSize = 32

const nameFieldSize = 8

// ErrHeaderUnresolvable is returned when a header field's two
// duplicated copies disagree and neither (or both) can be judged
// valid, so the corruption cannot be self-healed.
var ErrHeaderUnresolvable = errors.New("sidecar: header field unresolvable")

// Header is the logical content of a sidecar header: the checksum
// method name, its digest width in bits, and the block size in bytes.
// Every field is stored twice on disk for redundancy.
type Header struct {
	MethodName   string
	ChecksumBits uint32
	BlockBytes   uint32
}

// WriteHeader encodes h as the 32-byte duplicated-field header and
// writes it to w.
func WriteHeader(w io.Writer, h Header) error {
	buf := make([]byte, HeaderSize)
	putName(buf[0:8], h.MethodName)
	putName(buf[8:16], h.MethodName)
	binary.LittleEndian.PutUint32(buf[16:20], h.ChecksumBits)
	binary.LittleEndian.PutUint32(buf[20:24], h.ChecksumBits)
	binary.LittleEndian.PutUint32(buf[24:28], h.BlockBytes)
	binary.LittleEndian.PutUint32(buf[28:32], h.BlockBytes)
	_, err := w.Write(buf)
	return err
}

// ReadHeader reads and reconciles a 32-byte header from r. Each of
// the three logical fields is stored twice; if the two copies of a
// field disagree, the reader prefers whichever copy is valid (a
// power of two for the numeric fields, a registered method name for
// the name field). A single-field corruption that leaves the damaged
// copy invalid is recoverable this way; warnings describes which
// fields, if any, were repaired.
// If a field's copies disagree and neither (or both) are valid, the
// header is unreadable and ReadHeader returns ErrHeaderUnresolvable.
func ReadHeader(r io.Reader) (Header, []string, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, nil, fmt.Errorf("sidecar: short header: %w", err)
	}

	var warnings []string

	nameA := getName(buf[0:8])
	nameB := getName(buf[8:16])
	name, repaired, err := resolveName(nameA, nameB)
	if err != nil {
		return Header{}, nil, err
	}
	if repaired {
		warnings = append(warnings, "method name field repaired from redundant copy")
	}

	bitsA := binary.LittleEndian.Uint32(buf[16:20])
	bitsB := binary.LittleEndian.Uint32(buf[20:24])
	bits, repaired, err := resolveUint32(bitsA, bitsB)
	if err != nil {
		return Header{}, nil, fmt.Errorf("sidecar: checksum_bits: %w", err)
	}
	if repaired {
		warnings = append(warnings, "checksum_bits field repaired from redundant copy")
	}

	blockA := binary.LittleEndian.Uint32(buf[24:28])
	blockB := binary.LittleEndian.Uint32(buf[28:32])
	block, repaired, err := resolveUint32(blockA, blockB)
	if err != nil {
		return Header{}, nil, fmt.Errorf("sidecar: block_bytes: %w", err)
	}
	if repaired {
		warnings = append(warnings, "block_bytes field repaired from redundant copy")
	}

	return Header{MethodName: name, ChecksumBits: bits, BlockBytes: block}, warnings, nil
}

func putName(dst []byte, name string) {
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, name)
}

func getName(src []byte) string {
	end := len(src)
	for end > 0 && src[end-1] == 0 {
		end--
	}
	return string(src[:end])
}

// resolveUint32 reconciles two copies of a numeric header field,
// preferring whichever is a power of two when they disagree.
func resolveUint32(a, b uint32) (value uint32, repaired bool, err error) {
	if a == b {
		return a, false, nil
	}
	aOK, bOK := isPowerOfTwo(a), isPowerOfTwo(b)
	switch {
	case aOK && !bOK:
		return a, true, nil
	case bOK && !aOK:
		return b, true, nil
	default:
		return 0, false, ErrHeaderUnresolvable
	}
}

// resolveName reconciles two copies of the method-name field,
// preferring whichever names a registered checksum method when they
// disagree. This generalizes the numeric fields' power-of-two check:
// a method name has no numeric validity test, but it does have a
// closed set of valid values.
func resolveName(a, b string) (value string, repaired bool, err error) {
	if a == b {
		return a, false, nil
	}
	aOK, bOK := checksum.Known(a), checksum.Known(b)
	switch {
	case aOK && !bOK:
		return a, true, nil
	case bOK && !aOK:
		return b, true, nil
	default:
		return "", false, ErrHeaderUnresolvable
	}
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
