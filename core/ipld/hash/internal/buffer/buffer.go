// Package buffer implements the block framing shared by the Merkle–Damgård
// hashes in this module: a pending partial block, the ingest loop that feeds
// whole blocks to a compression callback, and the final length padding.
package buffer

import "encoding/binary"

// BlockSize is the size in bytes of a single compression block.
const BlockSize = 64

// Block is one unit of input to a compression function.
type Block = [BlockSize]byte

// Buffer holds the bytes of an incomplete block. After any exported method
// returns, Len is strictly less than BlockSize.
type Buffer struct {
	data Block
	n    int
}

func (b *Buffer) Len() int {
	return b.n
}

// Bytes returns the pending bytes. The slice aliases the buffer and is only
// valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n]
}

func (b *Buffer) Reset() {
	b.data = Block{}
	b.n = 0
}

// Load replaces the pending bytes with p. It panics if p does not fit in a
// partial block.
func (b *Buffer) Load(p []byte) {
	if len(p) >= BlockSize {
		panic("buffer: pending data must be shorter than a block")
	}
	b.Reset()
	b.n = copy(b.data[:], p)
}

// Feed runs the ingest protocol over p. Bytes first top up a non-empty
// buffer; a buffer that becomes full is compressed and emptied. Whole blocks
// are then compressed straight from p and the remainder is buffered. It
// returns the number of bytes handed to compress, always a multiple of
// BlockSize.
func (b *Buffer) Feed(p []byte, compress func(block *Block)) uint64 {
	var done uint64
	if b.n > 0 {
		k := copy(b.data[b.n:], p)
		b.n += k
		p = p[k:]
		if b.n < BlockSize {
			return done
		}
		compress(&b.data)
		done += BlockSize
		b.n = 0
	}
	for len(p) >= BlockSize {
		compress((*Block)(p[:BlockSize]))
		done += BlockSize
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		b.n = copy(b.data[:], p)
	}
	return done
}

// Pad returns the trailing block(s) for a message whose pending bytes are in
// b and whose total length is length bytes. The result holds the pending
// bytes, a single 0x80 byte, zeros up to 56 mod 64, and the bit length as a
// 64-bit integer in the given byte order. It is one block long when the
// pending data is at most 55 bytes and two blocks long otherwise. The buffer
// is not modified.
//
// Bit lengths of 2^64 or more wrap.
func (b *Buffer) Pad(length uint64, order binary.ByteOrder) []byte {
	var tail [2 * BlockSize]byte
	copy(tail[:], b.data[:b.n])
	tail[b.n] = 0x80

	size := BlockSize
	if b.n >= BlockSize-8 {
		size = 2 * BlockSize
	}
	order.PutUint64(tail[size-8:size], length<<3)
	return tail[:size]
}

// Blocks calls fn for every block in p, which must be a whole number of
// blocks long.
func Blocks(p []byte, fn func(block *Block)) {
	if len(p)%BlockSize != 0 {
		panic("buffer: partial block")
	}
	for ; len(p) > 0; p = p[BlockSize:] {
		fn((*Block)(p[:BlockSize]))
	}
}
