package registry

import (
	"encoding/hex"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	mhreg "github.com/multiformats/go-multihash/core"
	"github.com/storacha/go-legacyhash/core/ipld/hash/md5"
	"github.com/storacha/go-legacyhash/core/ipld/hash/sha1"
	"github.com/storacha/go-legacyhash/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	t.Run("md5", func(t *testing.T) {
		h, err := mhreg.GetHasher(multihash.MD5)
		require.NoError(t, err)
		require.IsType(t, &md5.Digest{}, h)
	})

	t.Run("sha1", func(t *testing.T) {
		h, err := mhreg.GetHasher(multihash.SHA1)
		require.NoError(t, err)
		require.IsType(t, &sha1.Digest{}, h)
	})
}

func TestGet(t *testing.T) {
	for _, code := range Codes() {
		h := helpers.Must(Get(code))
		require.Equal(t, code, h.Code())

		s := helpers.Must(New(code))
		s.Write([]byte("abc"))
		d := helpers.Must(h.Sum([]byte("abc")))
		require.Equal(t, d.Digest(), s.Sum(nil))
	}

	_, err := Get(multihash.SHA2_256)
	require.ErrorIs(t, err, ErrUnsupported)
	_, err = New(multihash.SHA2_256)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestCidPrefixSum(t *testing.T) {
	c, err := cid.Prefix{
		Version:  1,
		Codec:    cid.Raw,
		MhType:   multihash.MD5,
		MhLength: -1,
	}.Sum([]byte("abc"))
	require.NoError(t, err)

	dmh, err := multihash.Decode(c.Hash())
	require.NoError(t, err)
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", hex.EncodeToString(dmh.Digest))
}
