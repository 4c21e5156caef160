package block

import (
	"testing"

	"github.com/ipfs/go-cid"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-legacyhash/core/ipld/hash/md5"
	"github.com/storacha/go-legacyhash/core/ipld/hash/registry"
	"github.com/storacha/go-legacyhash/core/ipld/hash/sha1"
	"github.com/storacha/go-legacyhash/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	data := []byte("hello world")

	t.Run("md5", func(t *testing.T) {
		b := helpers.Must(Encode(data, md5.Hasher))
		c := b.Link().(cidlink.Link).Cid
		require.Equal(t, uint64(cid.Raw), c.Prefix().Codec)
		require.Equal(t, uint64(multihash.MD5), c.Prefix().MhType)
		require.Equal(t, data, b.Bytes())
		require.NoError(t, Verify(b))
	})

	t.Run("sha1", func(t *testing.T) {
		b := helpers.Must(Encode(data, sha1.Hasher))
		c := b.Link().(cidlink.Link).Cid
		require.Equal(t, uint64(multihash.SHA1), c.Prefix().MhType)

		// matches a CID built through the multihash registry
		want, err := c.Prefix().Sum(data)
		require.NoError(t, err)
		require.True(t, want.Equals(c))
	})
}

func TestVerify(t *testing.T) {
	t.Run("tampered bytes", func(t *testing.T) {
		b := helpers.Must(Encode([]byte("original"), md5.Hasher))
		forged := NewBlock(b.Link(), []byte("tampered"))
		require.ErrorIs(t, Verify(forged), ErrIntegrity)
	})

	t.Run("unsupported hash", func(t *testing.T) {
		c, err := cid.Prefix{
			Version:  1,
			Codec:    cid.Raw,
			MhType:   multihash.SHA2_256,
			MhLength: -1,
		}.Sum([]byte("data"))
		require.NoError(t, err)
		err = Verify(NewBlock(cidlink.Link{Cid: c}, []byte("data")))
		require.ErrorIs(t, err, registry.ErrUnsupported)
	})
}
