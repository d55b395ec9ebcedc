package memo

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hasher accumulates the key part of an input into a 64-bit xxhash digest.
//
// Variable-length values are length-prefixed so that adjacent fields never
// alias ("ab"+"c" and "a"+"bc" differ).
type Hasher struct {
	digest  *xxhash.Digest
	scratch [8]byte
}

func newHasher() *Hasher {
	return &Hasher{digest: xxhash.New()}
}

// Write feeds raw bytes without a length prefix. It implements io.Writer and
// never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.digest.Write(p)
}

// WriteBytes feeds a length-prefixed byte slice.
func (h *Hasher) WriteBytes(p []byte) {
	h.WriteUint64(uint64(len(p)))
	_, _ = h.digest.Write(p)
}

// WriteString feeds a length-prefixed string.
func (h *Hasher) WriteString(s string) {
	h.WriteUint64(uint64(len(s)))
	_, _ = h.digest.WriteString(s)
}

func (h *Hasher) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.scratch[:], v)
	_, _ = h.digest.Write(h.scratch[:])
}

func (h *Hasher) WriteInt64(v int64) {
	h.WriteUint64(uint64(v))
}

func (h *Hasher) WriteInt(v int) {
	h.WriteUint64(uint64(v))
}

func (h *Hasher) WriteBool(b bool) {
	if b {
		_, _ = h.digest.Write([]byte{1})
	} else {
		_, _ = h.digest.Write([]byte{0})
	}
}

// WriteFloat64 feeds the IEEE-754 bits of f. Positive and negative zero hash
// differently, as do distinct NaN payloads.
func (h *Hasher) WriteFloat64(f float64) {
	h.WriteUint64(math.Float64bits(f))
}

// Sum64 returns the digest of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.digest.Sum64()
}
