// Package sha1 implements the SHA-1 hash algorithm as defined in RFC 3174.
//
// SHA-1 is cryptographically broken and should only be used where a legacy
// format requires it.
package sha1

import (
	"encoding/binary"

	"github.com/storacha/go-legacyhash/core/ipld/hash"
	"github.com/storacha/go-legacyhash/core/ipld/hash/internal/buffer"
)

// The size of a SHA-1 checksum in bytes.
const Size = 20

// The blocksize of SHA-1 in bytes.
const BlockSize = buffer.BlockSize

// Block is a single 64 byte unit of compression input.
type Block = buffer.Block

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
	init4 = 0xc3d2e1f0
)

type Option func(cfg *config)

type config struct {
	compressor Compressor
}

// WithCompressor replaces the block function. The default is [Generic].
func WithCompressor(c Compressor) Option {
	return func(cfg *config) {
		cfg.compressor = c
	}
}

// Digest is a running SHA-1 computation, created with New. It is not safe
// for concurrent writes. Reading the checksum leaves the Digest able to take
// more data.
type Digest struct {
	s   State
	buf buffer.Buffer
	// n counts bytes already compressed and is a multiple of BlockSize.
	n          uint64
	compressor Compressor
}

var _ hash.Incremental = (*Digest)(nil)

func New(opts ...Option) *Digest {
	cfg := config{compressor: Generic}
	for _, opt := range opts {
		opt(&cfg)
	}
	d := &Digest{compressor: cfg.compressor}
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	d.s = State{init0, init1, init2, init3, init4}
	d.n = 0
	d.buf.Reset()
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// Len returns the number of bytes written since the last Reset.
func (d *Digest) Len() uint64 {
	return d.n + uint64(d.buf.Len())
}

// Write adds p to the running hash. It never returns an error. The length
// field wraps once 2^61 bytes have been written, after which checksums are
// wrong.
func (d *Digest) Write(p []byte) (int, error) {
	d.n += d.buf.Feed(p, d.compress)
	return len(p), nil
}

func (d *Digest) compress(block *Block) {
	d.s = d.compressor.Compress(d.s, block)
}

// Checksum returns the SHA-1 checksum of the data written so far.
func (d *Digest) Checksum() [Size]byte {
	saved := d.s
	buffer.Blocks(d.buf.Pad(d.Len(), binary.BigEndian), d.compress)

	var out [Size]byte
	for i, w := range d.s {
		binary.BigEndian.PutUint32(out[4*i:], w)
	}
	d.s = saved
	return out
}

// Sum appends the current checksum to in and returns the resulting slice.
func (d *Digest) Sum(in []byte) []byte {
	sum := d.Checksum()
	return append(in, sum[:]...)
}

// Hex returns the current checksum as 40 lowercase hex characters.
func (d *Digest) Hex() string {
	sum := d.Checksum()
	return hash.Hex(sum[:])
}

// Sum returns the SHA-1 checksum of data.
func Sum(data []byte) [Size]byte {
	d := New()
	d.Write(data)
	return d.Checksum()
}

// SumHex returns the SHA-1 checksum of data as lowercase hex.
func SumHex(data []byte) string {
	sum := Sum(data)
	return hash.Hex(sum[:])
}

// SumString returns the SHA-1 checksum of the bytes of s as lowercase hex.
func SumString(s string) string {
	return SumHex([]byte(s))
}
