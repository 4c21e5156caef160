package md5

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/storacha/go-legacyhash/core/multiformat"
)

// ErrInvalidState is returned when restoring a Digest from bytes that were
// not produced by MarshalBinary.
var ErrInvalidState = errors.New("md5: invalid hash state")

const marshaledSize = 4*4 + BlockSize + 8

// MarshalBinary encodes the running state: a varint md5 multicodec tag, the
// chaining value, the pending block zero padded to BlockSize and the total
// byte length.
func (d *Digest) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	for _, w := range d.s {
		b = binary.BigEndian.AppendUint32(b, w)
	}
	b = append(b, d.buf.Bytes()...)
	b = b[:len(b)+BlockSize-d.buf.Len()]
	b = binary.BigEndian.AppendUint64(b, d.Len())
	return multiformat.TagWith(Code, b), nil
}

// UnmarshalBinary restores state written by MarshalBinary. The configured
// compressor is kept.
func (d *Digest) UnmarshalBinary(b []byte) error {
	b, err := multiformat.UntagWith(Code, b, 0)
	if err != nil {
		return errors.Wrap(ErrInvalidState, err.Error())
	}
	if len(b) != marshaledSize {
		return errors.Wrapf(ErrInvalidState, "expected %d bytes after tag, got %d", marshaledSize, len(b))
	}
	var s State
	for i := range s {
		s[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	pending := b[4*4 : 4*4+BlockSize]
	total := binary.BigEndian.Uint64(b[4*4+BlockSize:])

	d.s = s
	d.n = total - total%BlockSize
	d.buf.Load(pending[:total%BlockSize])
	if d.compressor == nil {
		d.compressor = Generic
	}
	return nil
}
