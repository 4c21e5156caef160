package md5

import (
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-legacyhash/core/ipld/hash"
)

// md5 multihash code
const Code = uint64(multicodec.Md5)

type hasher struct{}

func (hasher) Code() uint64 {
	return Code
}

func (hasher) Size() uint64 {
	return Size
}

func (hasher) Sum(b []byte) (hash.Digest, error) {
	sum := Sum(b)
	d, err := multihash.Encode(sum[:], Code)
	if err != nil {
		return nil, err
	}
	return hash.NewDigest(Code, Size, sum[:], d), nil
}

// Hasher produces multihash encoded MD5 digests.
var Hasher hash.Hasher = hasher{}
