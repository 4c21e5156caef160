package sha1

import (
	"encoding/binary"
	"math/bits"
)

// State is the five word chaining value of SHA-1.
type State [5]uint32

// Compressor folds one 64 byte block into a chaining value. Implementations
// must be pure: the result depends only on the arguments.
type Compressor interface {
	Compress(s State, block *Block) State
}

// CompressorFunc adapts a plain function to the Compressor interface.
type CompressorFunc func(s State, block *Block) State

func (f CompressorFunc) Compress(s State, block *Block) State {
	return f(s, block)
}

// Generic is the portable SHA-1 block function from RFC 3174.
var Generic Compressor = CompressorFunc(compressGeneric)

const (
	_K0 = 0x5a827999
	_K1 = 0x6ed9eba1
	_K2 = 0x8f1bbcdc
	_K3 = 0xca62c1d6
)

func compressGeneric(s State, block *Block) State {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[4*i:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := s[0], s[1], s[2], s[3], s[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f, k = d^(b&(c^d)), _K0
		case i < 40:
			f, k = b^c^d, _K1
		case i < 60:
			f, k = (b&c)|(b&d)|(c&d), _K2
		default:
			f, k = b^c^d, _K3
		}
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
	s[4] += e
	return s
}
