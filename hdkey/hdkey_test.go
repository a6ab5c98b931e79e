package hdkey_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmeriniemela/bitcoinlib/hdkey"
	"github.com/elmeriniemela/bitcoinlib/networks"
)

func mustSeed(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestMasterFromSeedVector1(t *testing.T) {
	seed := mustSeed(t, "000102030405060708090a0b0c0d0e0f")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	assert.Equal(t,
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		master.Serialize())
	assert.Equal(t,
		"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		master.Neuter().Serialize())
}

func TestMasterFromSeedVector2(t *testing.T) {
	seed := mustSeed(t, "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	assert.Equal(t,
		"xprv9s21ZrQH143K31xYSDQpPDxsXRTUcvj2iNHm5NUtrGiGG5e2DtALGdso3pGz6ssrdK4PFmM8NSpSBHNqPqm55Qn3LqFtT2emdEXVYsCzC2U",
		master.Serialize())
}

func TestSubkeyForPathVector1(t *testing.T) {
	seed := mustSeed(t, "000102030405060708090a0b0c0d0e0f")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	cases := []struct {
		path string
		xprv string
	}{
		{"m/0H", "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7"},
		{"m/0H/1", "xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs"},
		{"m/0h/1/2h", "xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM"},
	}
	for _, c := range cases {
		child, err := master.SubkeyForPath(c.path)
		require.NoError(t, err, c.path)
		assert.Equal(t, c.xprv, child.Serialize(), c.path)
	}
}

func TestSubkeyForPathVector2LargeIndices(t *testing.T) {
	seed := mustSeed(t, "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	child, err := master.SubkeyForPath("m/0/2147483647h/1/2147483646h/2")
	require.NoError(t, err)
	assert.Equal(t,
		"xprvA2nrNbFZABcdryreWet9Ea4LvTJcGsqrMzxHx98MMrotbir7yrKCEXw7nadnHM8Dq38EGfSh6dqA9QWTyefMLEcBYJUuekgW4BYPJcr9E7j",
		child.Serialize())
}

func TestParseExtendedKeyRoundTrip(t *testing.T) {
	extkey := "xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM"
	k, err := hdkey.ParseExtendedKey(extkey)
	require.NoError(t, err)
	assert.Equal(t, extkey, k.Serialize())
}

func TestPublicAndPrivateDerivationAgree(t *testing.T) {
	seed := mustSeed(t, "000102030405060708090a0b0c0d0e0f")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	pubParent := master.Neuter()

	for i := uint32(0); i < 5; i++ {
		privChild, err := master.Child(i)
		require.NoError(t, err)
		pubChild, err := pubParent.Child(i)
		require.NoError(t, err)

		assert.Equal(t, privChild.Key().Public().Address(), pubChild.Key().Address())
	}
}

func TestHardenedDerivationFromPublicParentFails(t *testing.T) {
	seed := mustSeed(t, "000102030405060708090a0b0c0d0e0f")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	_, err = master.Neuter().Child(hdkey.HardenedOffset)
	require.Error(t, err)
}

func TestSubkeyForPathInvalid(t *testing.T) {
	seed := mustSeed(t, "000102030405060708090a0b0c0d0e0f")
	master, err := hdkey.NewMaster(seed, networks.Mainnet)
	require.NoError(t, err)

	_, err = master.SubkeyForPath("m/0/")
	require.Error(t, err)

	_, err = master.SubkeyForPath("m/-1")
	require.Error(t, err)
}
