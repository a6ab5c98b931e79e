// Package bitcoinhash provides the fixed-length hash primitives used
// throughout this module: SHA-256, double-SHA-256, RIPEMD-160, HMAC-SHA512,
// and their composition HASH160 = RIPEMD160(SHA256(x)). There is no
// streaming API; every function takes and returns whole byte slices, the
// same way the teacher package reaches directly for crypto/sha256 in
// tron.go rather than wrapping it behind an io.Writer.
package bitcoinhash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by the Bitcoin address format, not chosen for its own strength.
)

// SHA256 returns the SHA-256 digest of b.
func SHA256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// DoubleSHA256 returns SHA256(SHA256(b)), the hash used for Base58Check
// checksums and for the BIP-38 address hash.
func DoubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// RIPEMD160 returns the RIPEMD-160 digest of b.
func RIPEMD160(b []byte) [20]byte {
	h := ripemd160.New()
	h.Write(b) //nolint:errcheck // hash.Hash.Write never returns an error.
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 returns RIPEMD160(SHA256(b)), the digest used to build P2PKH
// addresses and extended-key fingerprints.
func Hash160(b []byte) [20]byte {
	sum := SHA256(b)
	return RIPEMD160(sum[:])
}

// HMACSHA512 returns HMAC-SHA512(key, data), used for BIP-32 master-key
// generation and child-key derivation.
func HMACSHA512(key, data []byte) [64]byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data) //nolint:errcheck // hash.Hash.Write never returns an error.
	var out [64]byte
	copy(out[:], mac.Sum(nil))
	return out
}
