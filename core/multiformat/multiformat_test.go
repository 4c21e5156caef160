package multiformat

import (
	"testing"

	"github.com/multiformats/go-multicodec"
	"github.com/storacha/go-legacyhash/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b := []byte{1, 2, 3}
		tb := TagWith(uint64(multicodec.Md5), b)
		require.Equal(t, []byte{0xd5, 0x01, 1, 2, 3}, tb)
		utb := helpers.Must(UntagWith(uint64(multicodec.Md5), tb, 0))
		require.EqualValues(t, b, utb)
	})

	t.Run("offset", func(t *testing.T) {
		tb := append([]byte{9, 9}, TagWith(uint64(multicodec.Sha1), []byte{7})...)
		utb := helpers.Must(UntagWith(uint64(multicodec.Sha1), tb, 2))
		require.Equal(t, []byte{7}, utb)
	})

	t.Run("incorrect tag", func(t *testing.T) {
		tb := TagWith(uint64(multicodec.Sha1), []byte{1, 2, 3})
		_, err := UntagWith(uint64(multicodec.Md5), tb, 0)
		require.Error(t, err)
		require.Equal(t, "expected multiformat with 0xd5 tag instead got 0x11", err.Error())
	})

	t.Run("empty source", func(t *testing.T) {
		_, err := UntagWith(uint64(multicodec.Md5), nil, 0)
		require.Error(t, err)
	})
}
