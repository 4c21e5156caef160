package hash

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// Format renders the multihash bytes of d in the given multibase.
func Format(d Digest, enc multibase.Encoding) (string, error) {
	return multibase.Encode(enc, d.Bytes())
}

// Parse decodes a multibase encoded multihash.
func Parse(s string) (Digest, error) {
	_, b, err := multibase.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decoding multibase: %w", err)
	}
	return FromMultihash(b)
}

// FromMultihash decodes multihash bytes into a Digest.
func FromMultihash(b []byte) (Digest, error) {
	dmh, err := multihash.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding multihash: %w", err)
	}
	return NewDigest(dmh.Code, uint64(dmh.Length), dmh.Digest, b), nil
}
