// Package hash defines the content hashing contracts shared by the MD5 and
// SHA-1 implementations in this module and the multihash digests they
// produce.
package hash

import (
	"encoding/hex"
	gohash "hash"
)

// Hasher computes a multihash digest of a complete message.
type Hasher interface {
	Code() uint64
	Size() uint64
	Sum(bytes []byte) (Digest, error)
}

// Incremental is the streaming side of a hash algorithm. Checksum bytes are
// obtained from the embedded [gohash.Hash] Sum method, which never disturbs
// the running state, so data may continue to be written afterwards.
type Incremental interface {
	gohash.Hash
	// Hex returns the lowercase hexadecimal checksum of the data written so
	// far.
	Hex() string
}

type Digest interface {
	// Code is the multihash code of the algorithm.
	Code() uint64
	// Size is the length of the raw digest in bytes.
	Size() uint64
	// Digest is the raw digest.
	Digest() []byte
	// Bytes is the multihash encoding of the digest.
	Bytes() []byte
}

type digest struct {
	code   uint64
	size   uint64
	digest []byte
	bytes  []byte
}

func (d *digest) Bytes() []byte {
	return d.bytes
}

func (d *digest) Code() uint64 {
	return d.code
}

func (d *digest) Digest() []byte {
	return d.digest
}

func (d *digest) Size() uint64 {
	return d.size
}

func NewDigest(code uint64, size uint64, digst []byte, bytes []byte) Digest {
	return &digest{code, size, digst, bytes}
}

// Hex encodes b as lowercase hexadecimal, high nibble first.
func Hex(b []byte) string {
	return hex.EncodeToString(b)
}
