package bitcoinhash_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmeriniemela/bitcoinlib/bitcoinhash"
)

func TestSHA256(t *testing.T) {
	sum := bitcoinhash.SHA256([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(sum[:]))
}

func TestDoubleSHA256(t *testing.T) {
	sum := bitcoinhash.DoubleSHA256([]byte("hello"))
	assert.Len(t, sum, 32)
	// Double hashing must differ from a single SHA-256 pass.
	single := bitcoinhash.SHA256([]byte("hello"))
	assert.NotEqual(t, single, sum)
}

func TestHash160(t *testing.T) {
	pub, err := hex.DecodeString("0250863ad64a87ae8a2fe83c1af1a8403cb53f53e486d8511dad8a04887e5b2352")
	require.NoError(t, err)
	h160 := bitcoinhash.Hash160(pub)
	assert.Equal(t, "f54a5851e9372b87810a8e60cdd2e7cfd80b6e31", hex.EncodeToString(h160[:]))
}

func TestHMACSHA512(t *testing.T) {
	out := bitcoinhash.HMACSHA512([]byte("Bitcoin seed"), []byte{0x00, 0x01, 0x02})
	assert.Len(t, out, 64)
}
