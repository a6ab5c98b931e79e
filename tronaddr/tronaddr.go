// Package tronaddr derives a TRON address from a Key's public point.
//
// TRON addresses are structurally an Ethereum-style Keccak-256 address
// wrapped in Bitcoin-style Base58Check: hash the uncompressed public key
// with Keccak-256, keep the last 20 bytes, prepend TRON's 0x41 network
// byte, then Base58Check-encode (double-SHA256 checksum, Base58 alphabet)
// exactly like a P2PKH address. This package is adapted from tron.go in
// the teacher package, generalized to take any Key instead of only a
// freshly generated secp256k1 public key, and reusing this module's own
// Base58Check encoder instead of hand-rolling the checksum step.
package tronaddr

import (
	"golang.org/x/crypto/sha3"

	"github.com/elmeriniemela/bitcoinlib/encoding"
	"github.com/elmeriniemela/bitcoinlib/key"
)

const networkByte = 0x41

// FromKey returns the Base58Check TRON address for k's public point.
func FromKey(k *key.Key) string {
	pub := k.PublicUncompressedBytes()

	hash := sha3.NewLegacyKeccak256()
	hash.Write(pub[1:])
	digest := hash.Sum(nil)

	payload := make([]byte, 0, 21)
	payload = append(payload, networkByte)
	payload = append(payload, digest[len(digest)-20:]...)

	return encoding.CheckEncode(payload)
}
