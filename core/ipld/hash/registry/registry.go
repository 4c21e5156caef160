// Package registry maps multihash codes to the hashers in this module and
// installs them in the go-multihash registry, so multihash.Sum and
// cid.Prefix.Sum compute MD5 and SHA-1 with these implementations.
//
// Import it for side effects where that matters:
//
//	import _ "github.com/storacha/go-legacyhash/core/ipld/hash/registry"
package registry

import (
	"errors"
	"fmt"
	gohash "hash"

	mhreg "github.com/multiformats/go-multihash/core"
	"github.com/storacha/go-legacyhash/core/ipld/hash"
	"github.com/storacha/go-legacyhash/core/ipld/hash/md5"
	"github.com/storacha/go-legacyhash/core/ipld/hash/sha1"
)

// ErrUnsupported is returned for a multihash code with no local hasher.
var ErrUnsupported = errors.New("unsupported multihash code")

type entry struct {
	hasher hash.Hasher
	new    func() gohash.Hash
}

var entries = map[uint64]entry{
	md5.Code:  {md5.Hasher, func() gohash.Hash { return md5.New() }},
	sha1.Code: {sha1.Hasher, func() gohash.Hash { return sha1.New() }},
}

func init() {
	for code, e := range entries {
		mhreg.Register(code, e.new)
	}
}

// Get returns the one-shot multihash Hasher for code.
func Get(code uint64) (hash.Hasher, error) {
	e, ok := entries[code]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnsupported, code)
	}
	return e.hasher, nil
}

// New returns a fresh streaming hash for code.
func New(code uint64) (gohash.Hash, error) {
	e, ok := entries[code]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnsupported, code)
	}
	return e.new(), nil
}

// Codes lists the supported multihash codes.
func Codes() []uint64 {
	return []uint64{md5.Code, sha1.Code}
}
