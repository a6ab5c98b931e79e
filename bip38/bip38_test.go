package bip38_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmeriniemela/bitcoinlib/bip38"
	"github.com/elmeriniemela/bitcoinlib/key"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
)

type vector struct {
	wif        string
	passphrase string
	encrypted  string
}

var nonECMultiplyVectors = []vector{
	{"5KN7MzqK5wt2TP1fQCYyHBtDrXdJuXbUzm4A9rKAteGu3Qi5CVR", "TestingOneTwoThree", "6PRVWUbkzzsbcVac2qwfssoUJAN1Xhrg6bNk8J7Nzm5H7kxEbn2Nh2ZoGg"},
	{"5HtasZ6ofTHP6HCwTqTkLDuLQisYPah7aUnSKfC7h4hMUVw2gi5", "Satoshi", "6PRNFFkZc2NZ6dJqFfhRoFNMR9Lnyj7dYGrzdgXXVMXcxoKTePPX1dWByq"},
	{"L44B5gGEpqEDRS9vVPz7QT35jcBG2r3CZwSwQ4fCewXAhAhqGVpP", "TestingOneTwoThree", "6PYNKZ1EAgYgmQfmNVamxyXVWHzK5s6DGhwP4J5o44cvXdoY7sRzhtpUeo"},
	{"KwYgW8gcxj1JWJXhPSu4Fqwzfhp5Yfi42mdYmMa4XqK7NJxXUSK7", "Satoshi", "6PYLtMnXvfG3oJde97zRyLYFZCYizPU5T3LwgdYJz1fRhh16bU7u6PPmY7"},
}

func TestEncryptMatchesKnownVectors(t *testing.T) {
	for _, v := range nonECMultiplyVectors {
		k, err := key.FromWIF(v.wif)
		require.NoError(t, err, v.wif)

		got, err := bip38.Encrypt(k, v.passphrase)
		require.NoError(t, err, v.wif)
		assert.Equal(t, v.encrypted, got, v.wif)
	}
}

func TestDecryptMatchesKnownVectors(t *testing.T) {
	for _, v := range nonECMultiplyVectors {
		k, err := bip38.Decrypt(v.encrypted, v.passphrase, nil)
		require.NoError(t, err, v.encrypted)
		assert.Equal(t, v.wif, k.WIF(), v.encrypted)
	}
}

func TestDecryptWrongPassphraseFails(t *testing.T) {
	v := nonECMultiplyVectors[2]
	_, err := bip38.Decrypt(v.encrypted, "wrong passphrase", nil)
	require.Error(t, err)
	assert.True(t, keyerr.Is(err, keyerr.InvalidPassphrase))
}

func TestEncryptRejectsPublicOnlyKey(t *testing.T) {
	k, err := key.FromWIF(nonECMultiplyVectors[0].wif)
	require.NoError(t, err)

	_, err = bip38.Encrypt(k.Public(), "anything")
	require.Error(t, err)
}
