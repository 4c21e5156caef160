package helpers

import (
	crand "crypto/rand"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
)

// Must takes return values from a function and returns the non-error one. If
// the error value is non-nil then it panics.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func RandomBytes(size int) []byte {
	bytes := make([]byte, size)
	_, _ = crand.Read(bytes)
	return bytes
}

// RandomCID returns a raw CID over random bytes hashed with the given
// multihash code.
func RandomCID(code uint64) datamodel.Link {
	bytes := RandomBytes(10)
	c, _ := cid.Prefix{
		Version:  1,
		Codec:    cid.Raw,
		MhType:   code,
		MhLength: -1,
	}.Sum(bytes)
	return cidlink.Link{Cid: c}
}

// Chunks splits b into consecutive pieces of at most size bytes.
func Chunks(b []byte, size int) [][]byte {
	var out [][]byte
	for len(b) > 0 {
		n := min(size, len(b))
		out = append(out, b[:n])
		b = b[n:]
	}
	return out
}

// Code returns the multihash code of a CID link.
func Code(l datamodel.Link) uint64 {
	return l.(cidlink.Link).Prefix().MhType
}

