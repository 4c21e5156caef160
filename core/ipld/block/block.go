// Package block pairs raw bytes with a CID link derived from an MD5 or
// SHA-1 multihash of those bytes.
package block

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/storacha/go-legacyhash/core/ipld/hash"
	"github.com/storacha/go-legacyhash/core/ipld/hash/registry"
)

// ErrIntegrity is returned when block bytes do not hash to the digest in
// the block link.
var ErrIntegrity = errors.New("block integrity check failed")

type Block interface {
	Link() ipld.Link
	Bytes() []byte
}

type block struct {
	link  ipld.Link
	bytes []byte
}

func (b *block) Link() ipld.Link {
	return b.link
}

func (b *block) Bytes() []byte {
	return b.bytes
}

// NewBlock pairs a link with bytes without checking that they agree.
func NewBlock(link ipld.Link, bytes []byte) Block {
	return &block{link, bytes}
}

// Encode hashes data with h and returns a block linked by a CIDv1 with the
// raw codec.
func Encode(data []byte, h hash.Hasher) (Block, error) {
	d, err := h.Sum(data)
	if err != nil {
		return nil, fmt.Errorf("hashing block: %w", err)
	}
	c := cid.NewCidV1(cid.Raw, d.Bytes())
	return NewBlock(cidlink.Link{Cid: c}, data), nil
}

// Verify recomputes the digest of b with the hasher registered for the
// multihash code in its link.
func Verify(b Block) error {
	cl, ok := b.Link().(cidlink.Link)
	if !ok {
		return fmt.Errorf("unsupported link type: %T", b.Link())
	}
	want, err := hash.FromMultihash(cl.Hash())
	if err != nil {
		return err
	}
	h, err := registry.Get(want.Code())
	if err != nil {
		return err
	}
	got, err := h.Sum(b.Bytes())
	if err != nil {
		return err
	}
	if !bytes.Equal(got.Digest(), want.Digest()) {
		return fmt.Errorf("%w: %s", ErrIntegrity, cl)
	}
	return nil
}
