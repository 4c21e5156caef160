package sha1

import (
	"bytes"
	stdsha1 "crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-legacyhash/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestVectors(t *testing.T) {
	vectors := []struct {
		in  string
		out string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
		{"The quick brown fox jumps over the lazy dog", "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12"},
	}
	for _, v := range vectors {
		t.Run(v.out, func(t *testing.T) {
			require.Equal(t, v.out, SumString(v.in))

			d := New()
			n, err := d.Write([]byte(v.in))
			require.NoError(t, err)
			require.Equal(t, len(v.in), n)
			require.Equal(t, v.out, d.Hex())
			require.Equal(t, v.out, hex.EncodeToString(d.Sum(nil)))
		})
	}
}

func TestMillionA(t *testing.T) {
	d := New()
	d.Write(bytes.Repeat([]byte{'a'}, 1_000_000))
	require.Equal(t, "34aa973cd4c4daa4f61eeb2bdbad27316534016f", d.Hex())
}

func TestChunking(t *testing.T) {
	msg := helpers.RandomBytes(5*BlockSize + 31)
	want := stdsha1.Sum(msg)

	t.Run("every split point", func(t *testing.T) {
		for i := 0; i <= len(msg); i++ {
			d := New()
			d.Write(msg[:i])
			d.Write(nil)
			d.Write(msg[i:])
			require.Equal(t, want, d.Checksum(), "split at %d", i)
		}
	})

	t.Run("block aligned writes", func(t *testing.T) {
		d := New()
		for _, c := range helpers.Chunks(msg, BlockSize) {
			d.Write(c)
		}
		require.Equal(t, want, d.Checksum())
	})

	t.Run("byte at a time", func(t *testing.T) {
		d := New()
		for _, c := range msg {
			d.Write([]byte{c})
		}
		require.Equal(t, want, d.Checksum())
	})
}

func TestPaddingBoundaries(t *testing.T) {
	for _, n := range []int{0, 55, 56, 57, 63, 64, 65, 119, 120, 128} {
		msg := helpers.RandomBytes(n)
		require.Equal(t, stdsha1.Sum(msg), Sum(msg), "length %d", n)

		d := New()
		d.Write(msg)
		require.Equal(t, uint64(n), d.Len())
	}
}

func TestChecksumDoesNotFinalize(t *testing.T) {
	head := helpers.RandomBytes(70)
	tail := helpers.RandomBytes(90)

	d := New()
	d.Write(head)
	for i := 0; i < 3; i++ {
		require.Equal(t, stdsha1.Sum(head), d.Checksum())
	}
	require.Equal(t, uint64(len(head)), d.Len())

	d.Write(tail)
	require.Equal(t, stdsha1.Sum(append(head, tail...)), d.Checksum())
}

func TestReset(t *testing.T) {
	d := New()
	d.Write(helpers.RandomBytes(1000))
	d.Reset()
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", d.Hex())
}

func TestCompressor(t *testing.T) {
	calls := 0
	d := New(WithCompressor(CompressorFunc(func(s State, block *Block) State {
		calls++
		return Generic.Compress(s, block)
	})))
	msg := make([]byte, 56)
	d.Write(msg)
	require.Zero(t, calls)
	require.Equal(t, stdsha1.Sum(msg), d.Checksum())
	require.Equal(t, 2, calls, "56 pending bytes need two padding blocks")
}

func TestMarshalBinary(t *testing.T) {
	msg := helpers.RandomBytes(200)
	for _, split := range []int{0, 1, 63, 64, 65, 199} {
		d := New()
		d.Write(msg[:split])
		state := helpers.Must(d.MarshalBinary())
		require.EqualValues(t, Code, state[0])

		r := New()
		require.NoError(t, r.UnmarshalBinary(state))
		r.Write(msg[split:])
		require.Equal(t, stdsha1.Sum(msg), r.Checksum(), "split at %d", split)
	}

	t.Run("wrong tag", func(t *testing.T) {
		state := helpers.Must(New().MarshalBinary())
		state[0] = 0x12
		require.ErrorIs(t, New().UnmarshalBinary(state), ErrInvalidState)
	})

	t.Run("wrong size", func(t *testing.T) {
		state := helpers.Must(New().MarshalBinary())
		require.ErrorIs(t, New().UnmarshalBinary(append(state, 0)), ErrInvalidState)
	})
}

func TestHasher(t *testing.T) {
	d, err := Hasher.Sum([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, uint64(multihash.SHA1), d.Code())
	require.EqualValues(t, Size, d.Size())
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hex.EncodeToString(d.Digest()))

	mh, err := multihash.Sum([]byte("abc"), multihash.SHA1, -1)
	require.NoError(t, err)
	require.Equal(t, []byte(mh), d.Bytes())
}
