package tronaddr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmeriniemela/bitcoinlib/key"
	"github.com/elmeriniemela/bitcoinlib/tronaddr"
)

func TestFromKeyProducesWellFormedAddress(t *testing.T) {
	k, err := key.FromHex("b954f71933986e3de76d3a94454dc52ec082c662ba67ca3ba48ff72bc2704a58")
	require.NoError(t, err)

	addr := tronaddr.FromKey(k)
	assert.Equal(t, byte('T'), addr[0])
	assert.Len(t, addr, 34)
}

func TestFromKeyIsDeterministic(t *testing.T) {
	k, err := key.FromHex("b954f71933986e3de76d3a94454dc52ec082c662ba67ca3ba48ff72bc2704a58")
	require.NoError(t, err)

	assert.Equal(t, tronaddr.FromKey(k), tronaddr.FromKey(k))
}
