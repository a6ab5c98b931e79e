// Package bip38 implements the non-EC-multiply variant of BIP-38:
// passphrase-based encryption of a private key using scrypt for key
// derivation and AES-256 for the cipher.
//
// This package depends on key but not the reverse: key.Parse recognizes a
// BIP-38-prefixed Base58Check string by its version bytes and directs the
// caller here rather than decrypting it itself, since decryption needs a
// passphrase Parse's input shape has no place for.
package bip38

import (
	"bytes"
	"crypto/aes"

	"golang.org/x/crypto/scrypt"

	"github.com/elmeriniemela/bitcoinlib/bitcoinhash"
	"github.com/elmeriniemela/bitcoinlib/encoding"
	"github.com/elmeriniemela/bitcoinlib/key"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
	"github.com/elmeriniemela/bitcoinlib/networks"
)

const (
	prefixByte0 = 0x01
	prefixByte1 = 0x42

	flagCompressed   = 0xE0
	flagUncompressed = 0xC0

	scryptN = 16384
	scryptR = 8
	scryptP = 8
	dkLen   = 64

	payloadLen = 39 // prefix(2) + flag(1) + addr_hash(4) + e1(16) + e2(16)
)

// Encrypt encrypts k's private scalar with passphrase, producing a 58
// character Base58Check string beginning with "6P". k must carry a private
// component. The address (and therefore the flag byte and salt) is derived
// using k's current Compressed flag; decrypting later restores that same
// flag, so round-tripping depends on the caller not having changed it.
func Encrypt(k *key.Key, passphrase string) (string, error) {
	if !k.HasPrivate() {
		return "", keyerr.New(keyerr.InvalidScalar, "bip38 encryption requires a private key")
	}

	addrHash := addressHash(k.Address())

	dk, err := scrypt.Key([]byte(passphrase), addrHash[:], scryptN, scryptR, scryptP, dkLen)
	if err != nil {
		return "", keyerr.Wrap(keyerr.EntropyUnavailable, err, "scrypt key derivation failed")
	}
	dk1, dk2 := dk[:32], dk[32:]

	priv := k.PrivateBytes()
	var half1, half2 [16]byte
	for i := 0; i < 16; i++ {
		half1[i] = priv[i] ^ dk1[i]
		half2[i] = priv[16+i] ^ dk1[16+i]
	}

	block, err := aes.NewCipher(dk2)
	if err != nil {
		return "", keyerr.Wrap(keyerr.InvalidPassphrase, err, "aes cipher setup failed")
	}
	var e1, e2 [16]byte
	block.Encrypt(e1[:], half1[:])
	block.Encrypt(e2[:], half2[:])

	flag := byte(flagUncompressed)
	if k.Compressed() {
		flag = flagCompressed
	}

	payload := make([]byte, 0, payloadLen)
	payload = append(payload, prefixByte0, prefixByte1, flag)
	payload = append(payload, addrHash[:]...)
	payload = append(payload, e1[:]...)
	payload = append(payload, e2[:]...)

	return encoding.CheckEncode(payload), nil
}

// Decrypt reverses Encrypt: it recovers the 32-byte private scalar using
// passphrase and the ciphertext's embedded address hash, then verifies the
// result by re-deriving the address and comparing address hashes. A wrong
// passphrase almost always produces a plausible-looking but wrong key,
// which this verification step catches.
func Decrypt(s, passphrase string, net *networks.Params) (*key.Key, error) {
	if net == nil {
		net = networks.Mainnet
	}

	decoded, err := encoding.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) != payloadLen || decoded[0] != prefixByte0 || decoded[1] != prefixByte1 {
		return nil, keyerr.New(keyerr.UnrecognizedFormat, "not a BIP-38 encrypted key")
	}

	flag := decoded[2]
	wantHash := decoded[3:7]
	e1, e2 := decoded[7:23], decoded[23:39]
	compressed := flag == flagCompressed

	dk, err := scrypt.Key([]byte(passphrase), wantHash, scryptN, scryptR, scryptP, dkLen)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.EntropyUnavailable, err, "scrypt key derivation failed")
	}
	dk1, dk2 := dk[:32], dk[32:]

	block, err := aes.NewCipher(dk2)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidPassphrase, err, "aes cipher setup failed")
	}
	var half1, half2 [16]byte
	block.Decrypt(half1[:], e1)
	block.Decrypt(half2[:], e2)

	priv := make([]byte, 32)
	for i := 0; i < 16; i++ {
		priv[i] = half1[i] ^ dk1[i]
		priv[16+i] = half2[i] ^ dk1[16+i]
	}

	k, err := key.FromPrivateBytes(priv, key.WithCompressed(compressed), key.WithNetwork(net))
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidPassphrase, err, "decrypted scalar is invalid")
	}

	gotHash := addressHash(k.Address())
	if !bytes.Equal(gotHash[:], wantHash) {
		return nil, keyerr.New(keyerr.InvalidPassphrase, "address hash mismatch; wrong passphrase")
	}
	return k, nil
}

func addressHash(address string) [4]byte {
	sum := bitcoinhash.DoubleSHA256([]byte(address))
	var h [4]byte
	copy(h[:], sum[:4])
	return h
}
