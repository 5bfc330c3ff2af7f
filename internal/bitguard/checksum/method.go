// Package checksum implements the uniform chk(bytes) -> digest contract
// for every method the toolkit understands: full-digest MD4, MD5 and
// SHA-256, a little-endian CRC-32, and three truncated MD5 variants that
// select a fixed set of byte positions out of the full 16-byte MD5 sum.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"golang.org/x/crypto/md4"
)

// Method is the capability set a task selects once, at startup, and
// passes down explicitly. It replaces the symbol-indirect dispatch a
// global "current hash function" would require.
type Method struct {
	Name       string
	DigestBits uint32
	Compute    func([]byte) []byte
}

// DigestBytes is the digest width in bytes.
func (m Method) DigestBytes() uint32 {
	return m.DigestBits / 8
}

var registry = map[string]Method{}

func register(m Method) {
	registry[m.Name] = m
}

func init() {
	register(Method{Name: "md4", DigestBits: 128, Compute: computeMD4})
	register(Method{Name: "md5", DigestBits: 128, Compute: computeMD5})
	register(Method{Name: "sha256", DigestBits: 256, Compute: computeSHA256})
	register(Method{Name: "crc32", DigestBits: 32, Compute: computeCRC32})
	register(Method{Name: "md5_16", DigestBits: 16, Compute: selectMD5([]int{6, 13})})
	register(Method{Name: "md5_32", DigestBits: 32, Compute: selectMD5([]int{2, 6, 10, 14})})
	register(Method{Name: "md5_64", DigestBits: 64, Compute: selectMD5([]int{2, 3, 6, 9, 10, 12, 13, 15})})
}

// ByName resolves a method descriptor by its registered name.
func ByName(name string) (Method, error) {
	m, ok := registry[name]
	if !ok {
		return Method{}, fmt.Errorf("checksum: unknown method %q", name)
	}
	return m, nil
}

// Known reports whether name is a registered method, used by the
// sidecar header codec to decide which of two duplicated name fields
// is the valid one when they disagree.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns every registered method name, for CLI completion.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func computeMD4(b []byte) []byte {
	h := md4.New()
	h.Write(b)
	return h.Sum(nil)
}

func computeMD5(b []byte) []byte {
	sum := md5.Sum(b)
	return sum[:]
}

func computeSHA256(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func computeCRC32(b []byte) []byte {
	sum := crc32.ChecksumIEEE(b)
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, sum)
	return out
}

// selectMD5 builds a truncated-MD5 method that picks a fixed set of
// byte indices out of the full 16-byte digest.
func selectMD5(indices []int) func([]byte) []byte {
	idx := append([]int(nil), indices...)
	return func(b []byte) []byte {
		full := md5.Sum(b)
		out := make([]byte, len(idx))
		for i, pos := range idx {
			out[i] = full[pos]
		}
		return out
	}
}
