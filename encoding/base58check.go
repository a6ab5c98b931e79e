// Package encoding implements Base58 and Base58Check, the textual encoding
// used for WIF keys, P2PKH addresses, extended keys, and BIP-38 strings.
//
// The raw alphabet codec is delegated to github.com/btcsuite/btcd/btcutil's
// base58 package, the same dependency the teacher package already pulls in
// and uses directly in tron.go. That function has no notion of a checksum
// or of a version prefix, so this package adds Base58Check on top of it the
// same way tron.go hand-rolls a double-SHA256 checksum around
// base58.Encode — generalized here to the variable-length version prefixes
// this module needs (1 byte for WIF/P2PKH, 4 bytes for xprv/xpub, 2 bytes
// for BIP-38).
package encoding

import (
	"bytes"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/elmeriniemela/bitcoinlib/bitcoinhash"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
)

// Alphabet is the Base58 alphabet: digits and letters with 0, O, I, and l
// removed to avoid visual ambiguity.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const checksumLen = 4

// Encode base58-encodes raw bytes with no checksum.
func Encode(b []byte) string {
	return base58.Encode(b)
}

// Decode base58-decodes s with no checksum validation. It returns
// UnrecognizedFormat if s contains a character outside the Base58 alphabet.
func Decode(s string) ([]byte, error) {
	if err := validateAlphabet(s); err != nil {
		return nil, err
	}
	return base58.Decode(s), nil
}

// CheckEncode encodes payload (which already includes any version prefix)
// as Base58Check: payload followed by the first four bytes of
// DoubleSHA256(payload).
func CheckEncode(payload []byte) string {
	checksum := bitcoinhash.DoubleSHA256(payload)
	full := make([]byte, 0, len(payload)+checksumLen)
	full = append(full, payload...)
	full = append(full, checksum[:checksumLen]...)
	return base58.Encode(full)
}

// CheckDecode decodes a Base58Check string and verifies its checksum,
// returning the payload with the trailing checksum stripped (the version
// prefix, if any, is still the caller's to peel off — CheckDecode doesn't
// know how many bytes the caller's version prefix occupies).
func CheckDecode(s string) ([]byte, error) {
	if s == "" {
		return nil, keyerr.New(keyerr.UnrecognizedFormat, "empty base58check string")
	}
	if err := validateAlphabet(s); err != nil {
		return nil, err
	}

	full := base58.Decode(s)
	if len(full) < checksumLen {
		return nil, keyerr.New(keyerr.UnrecognizedFormat, "base58check string too short")
	}

	payload := full[:len(full)-checksumLen]
	checksum := full[len(full)-checksumLen:]
	expected := bitcoinhash.DoubleSHA256(payload)
	if !bytes.Equal(checksum, expected[:checksumLen]) {
		return nil, keyerr.New(keyerr.InvalidChecksum, "base58check checksum mismatch")
	}
	return payload, nil
}

func validateAlphabet(s string) error {
	for _, r := range s {
		if !strings.ContainsRune(Alphabet, r) {
			return keyerr.Newf(keyerr.UnrecognizedFormat, "invalid base58 character %q", r)
		}
	}
	return nil
}
