// Package key implements the Key abstraction: a private scalar or a public
// curve point, plus the compression preference and network that govern how
// it round-trips through hex, WIF, SEC, and Base58Check address encodings.
//
// Construction follows the named-parser-plus-dispatcher shape the teacher
// package used for deriving keys from a mnemonic: one function per input
// shape (FromRandom, FromScalar, FromPrivateBytes, FromHex, ...), and Parse
// as the single entry point that inspects the input and delegates.
package key

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"sync"

	"github.com/elmeriniemela/bitcoinlib/bitcoinhash"
	"github.com/elmeriniemela/bitcoinlib/curve"
	"github.com/elmeriniemela/bitcoinlib/encoding"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
	"github.com/elmeriniemela/bitcoinlib/networks"
)

// Key is exactly one of a private scalar or a public curve point, together
// with a compressed-serialization preference and the network whose version
// bytes it encodes with. The public point is derived from the private
// scalar on first use and cached; the reverse derivation is impossible.
type Key struct {
	private    *curve.PrivateKey
	compressed bool
	network    *networks.Params

	pubOnce sync.Once
	public  *curve.PublicKey
}

const maxRandomAttempts = 16

// FromRandom generates a new private key from a cryptographically secure
// random source, retrying if the sampled scalar falls outside [1, n-1].
// Compressed defaults to true.
func FromRandom(opts ...Option) (*Key, error) {
	o := buildOptions(opts)
	b := make([]byte, 32)
	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		if _, err := rand.Read(b); err != nil {
			return nil, keyerr.Wrap(keyerr.EntropyUnavailable, err, "reading random scalar")
		}
		if curve.ScalarInRange(b) {
			return newPrivateKey(b, o.compressedOr(true), o.network)
		}
	}
	return nil, keyerr.New(keyerr.EntropyUnavailable, "could not sample a valid scalar")
}

// FromScalar builds a private key from a positive big integer less than
// the curve order. Compressed defaults to true.
func FromScalar(s *big.Int, opts ...Option) (*Key, error) {
	o := buildOptions(opts)
	if s == nil || s.Sign() <= 0 {
		return nil, keyerr.New(keyerr.InvalidScalar, "scalar must be positive")
	}
	if s.BitLen() > 256 {
		return nil, keyerr.New(keyerr.InvalidScalar, "scalar exceeds 256 bits")
	}
	b := make([]byte, 32)
	s.FillBytes(b)
	return newPrivateKey(b, o.compressedOr(true), o.network)
}

// FromPrivateBytes builds a private key from a 32-byte big-endian scalar.
// Compressed defaults to true.
func FromPrivateBytes(b []byte, opts ...Option) (*Key, error) {
	o := buildOptions(opts)
	if len(b) != 32 {
		return nil, keyerr.Newf(keyerr.InvalidScalar, "private key must be 32 bytes, got %d", len(b))
	}
	return newPrivateKey(b, o.compressedOr(true), o.network)
}

// FromPublicBytes builds a public-only key from a 33-byte compressed or
// 65-byte uncompressed SEC public key.
func FromPublicBytes(b []byte, opts ...Option) (*Key, error) {
	o := buildOptions(opts)
	switch {
	case len(b) == 33 && (b[0] == 0x02 || b[0] == 0x03):
		pub, err := curve.ParsePubKey(b)
		if err != nil {
			return nil, err
		}
		return newPublicKey(pub, o.compressedOr(true), o.network), nil
	case len(b) == 65 && b[0] == 0x04:
		pub, err := curve.ParsePubKey(b)
		if err != nil {
			return nil, err
		}
		return newPublicKey(pub, o.compressedOr(false), o.network), nil
	default:
		return nil, keyerr.Newf(keyerr.UnrecognizedFormat, "unrecognized public key encoding, length %d", len(b))
	}
}

// FromPoint builds a public-only key from affine (X, Y) coordinates.
func FromPoint(x, y *big.Int, opts ...Option) (*Key, error) {
	o := buildOptions(opts)
	pub, err := curve.PointFromAffine(x, y)
	if err != nil {
		return nil, err
	}
	return newPublicKey(pub, o.compressedOr(true), o.network), nil
}

// FromHex builds a key from a hex-encoded private scalar (64 chars), a
// 32-byte private scalar followed by a 0x01 compression flag byte (66
// chars, first byte not 0x02/0x03), a
// compressed public key (66 chars starting 02/03), or an uncompressed
// public key (130 chars starting 04).
func FromHex(s string, opts ...Option) (*Key, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.UnrecognizedFormat, err, "invalid hex string")
	}
	return fromRawShape(b, opts)
}

// FromWIF builds a private key from its Base58Check Wallet Import Format.
// The network is inferred from the version byte; any network option is
// ignored.
func FromWIF(s string, opts ...Option) (*Key, error) {
	decoded, err := encoding.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 1 {
		return nil, keyerr.New(keyerr.UnrecognizedFormat, "empty WIF payload")
	}
	net, ok := networks.ByWIFVersion(decoded[0])
	if !ok {
		return nil, keyerr.Newf(keyerr.UnrecognizedFormat, "unrecognized WIF version byte 0x%02x", decoded[0])
	}
	rest := decoded[1:]
	switch len(rest) {
	case 32:
		return newPrivateKey(rest, false, net)
	case 33:
		if rest[32] != 0x01 {
			return nil, keyerr.New(keyerr.UnrecognizedFormat, "unrecognized WIF compression flag byte")
		}
		return newPrivateKey(rest[:32], true, net)
	default:
		return nil, keyerr.Newf(keyerr.UnrecognizedFormat, "unrecognized WIF payload length %d", len(rest))
	}
}

// FromAddress always fails: a P2PKH address is a one-way hash of a public
// key and cannot be turned back into a Key. It exists so the rejection is
// documented alongside the other named constructors rather than only
// surfacing implicitly out of Parse.
func FromAddress(s string) (*Key, error) {
	return nil, keyerr.New(keyerr.UnrecognizedFormat, "addresses are outputs only, not a valid Key input")
}

// Parse inspects input's shape and dispatches to the matching named
// constructor. Supported shapes: nil or "" (random), *big.Int (scalar),
// []byte of length 32/33/65 (private or public bytes), and string forms of
// hex or WIF. A BIP-38 string is recognized by its prefix and rejected
// with InvalidPassphrase, since decrypting it needs a passphrase (see
// bip38.Decrypt). A decimal digit string is deliberately NOT accepted
// here, since it is ambiguous with a short hex string of all-digit
// characters; use FromScalar with a parsed *big.Int instead.
func Parse(input interface{}, opts ...Option) (*Key, error) {
	switch v := input.(type) {
	case nil:
		return FromRandom(opts...)
	case *big.Int:
		return FromScalar(v, opts...)
	case int:
		return FromScalar(big.NewInt(int64(v)), opts...)
	case int64:
		return FromScalar(big.NewInt(v), opts...)
	case uint64:
		return FromScalar(new(big.Int).SetUint64(v), opts...)
	case []byte:
		if len(v) == 0 {
			return FromRandom(opts...)
		}
		return fromRawShape(v, opts)
	case string:
		return fromStringShape(v, opts)
	default:
		return nil, keyerr.Newf(keyerr.UnrecognizedFormat, "unsupported input type %T", input)
	}
}

func fromRawShape(b []byte, opts []Option) (*Key, error) {
	o := buildOptions(opts)
	switch len(b) {
	case 32:
		return newPrivateKey(b, o.compressedOr(true), o.network)
	case 33:
		if b[0] == 0x02 || b[0] == 0x03 {
			return FromPublicBytes(b, opts...)
		}
		if b[32] != 0x01 {
			return nil, keyerr.New(keyerr.UnrecognizedFormat, "33-byte value is neither a compressed public key nor a flagged private key")
		}
		return newPrivateKey(b[:32], true, o.network)
	case 65:
		if b[0] != 0x04 {
			return nil, keyerr.New(keyerr.UnrecognizedFormat, "65-byte value must start with 0x04")
		}
		return FromPublicBytes(b, opts...)
	default:
		return nil, keyerr.Newf(keyerr.UnrecognizedFormat, "unrecognized byte length %d", len(b))
	}
}

func fromStringShape(s string, opts []Option) (*Key, error) {
	if s == "" {
		return FromRandom(opts...)
	}
	if isAllDigits(s) {
		return nil, keyerr.New(keyerr.UnrecognizedFormat, "decimal scalar strings are not accepted by Parse; use FromScalar")
	}
	if isHex(s) {
		switch len(s) {
		case 64, 66, 130:
			return FromHex(s, opts...)
		}
	}

	decoded, err := encoding.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	switch {
	case len(decoded) >= 2 && decoded[0] == bip38PrefixByte0 && decoded[1] == bip38PrefixByte1:
		return nil, keyerr.New(keyerr.InvalidPassphrase, "BIP-38 encrypted keys must be decoded with bip38.Decrypt, which takes a passphrase")
	case len(decoded) >= 1 && isWIFVersion(decoded[0]):
		return FromWIF(s, opts...)
	case len(decoded) >= 1 && isP2PKHVersion(decoded[0]):
		return FromAddress(s)
	default:
		return nil, keyerr.New(keyerr.UnrecognizedFormat, "unrecognized Base58Check version")
	}
}

const (
	bip38PrefixByte0 = 0x01
	bip38PrefixByte1 = 0x42
)

func isWIFVersion(v byte) bool {
	_, ok := networks.ByWIFVersion(v)
	return ok
}

func isP2PKHVersion(v byte) bool {
	_, ok := networks.ByP2PKHVersion(v)
	return ok
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return len(s)%2 == 0
}

func newPrivateKey(scalar []byte, compressed bool, net *networks.Params) (*Key, error) {
	priv, err := curve.PrivateKeyFromScalar(scalar)
	if err != nil {
		return nil, err
	}
	return &Key{private: priv, compressed: compressed, network: net}, nil
}

func newPublicKey(pub *curve.PublicKey, compressed bool, net *networks.Params) *Key {
	return &Key{public: pub, compressed: compressed, network: net}
}

func (k *Key) pub() *curve.PublicKey {
	k.pubOnce.Do(func() {
		if k.public == nil {
			k.public = k.private.PubKey()
		}
	})
	return k.public
}

// Compressed reports this key's preferred serialization form.
func (k *Key) Compressed() bool { return k.compressed }

// Network returns the network whose version bytes this key encodes with.
func (k *Key) Network() *networks.Params { return k.network }

// HasPrivate reports whether this key carries a private scalar.
func (k *Key) HasPrivate() bool { return k.private != nil }

// PrivateDec returns the private scalar as a base-10 string, or "" if this
// key has no private component.
func (k *Key) PrivateDec() string {
	if k.private == nil {
		return ""
	}
	return new(big.Int).SetBytes(k.private.Serialize()).String()
}

// PrivateHex returns the private scalar as 64 lowercase hex characters, or
// "" if this key has no private component.
func (k *Key) PrivateHex() string {
	if k.private == nil {
		return ""
	}
	return hex.EncodeToString(k.private.Serialize())
}

// PrivateBytes returns the 32-byte big-endian private scalar, or nil if
// this key has no private component.
func (k *Key) PrivateBytes() []byte {
	if k.private == nil {
		return nil
	}
	b := k.private.Serialize()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Public returns the same key stripped of its private component, keeping
// the compressed preference and network.
func (k *Key) Public() *Key {
	return newPublicKey(k.pub(), k.compressed, k.network)
}

// PublicBytes returns the compressed SEC public key as raw bytes,
// regardless of Compressed — callers that need a fixed wire encoding
// (BIP-32 derivation data, fingerprints) always use the compressed form.
func (k *Key) PublicBytes() []byte {
	b := k.pub().SerializeCompressed()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// PublicHex returns the compressed SEC public key as hex.
func (k *Key) PublicHex() string {
	return hex.EncodeToString(k.pub().SerializeCompressed())
}

// PublicUncompressed returns the uncompressed SEC public key as hex.
func (k *Key) PublicUncompressed() string {
	return hex.EncodeToString(k.pub().SerializeUncompressed())
}

// PublicUncompressedBytes returns the uncompressed SEC public key as raw
// bytes, regardless of Compressed.
func (k *Key) PublicUncompressedBytes() []byte {
	b := k.pub().SerializeUncompressed()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// PublicPoint returns the public point's affine (X, Y) coordinates.
func (k *Key) PublicPoint() (x, y *big.Int) {
	ecdsa := k.pub().ToECDSA()
	return ecdsa.X, ecdsa.Y
}

// publicSEC returns the SEC encoding matching the compressed flag.
func (k *Key) publicSEC() []byte {
	if k.compressed {
		return k.pub().SerializeCompressed()
	}
	return k.pub().SerializeUncompressed()
}

// Hash160 returns HASH160 of the SEC form selected by Compressed.
func (k *Key) Hash160() [20]byte {
	return bitcoinhash.Hash160(k.publicSEC())
}

// Address returns the Base58Check P2PKH address over the SEC form selected
// by Compressed.
func (k *Key) Address() string {
	h := k.Hash160()
	payload := append([]byte{k.network.P2PKHVersion}, h[:]...)
	return encoding.CheckEncode(payload)
}

// AddressUncompressed returns the Base58Check P2PKH address computed over
// the uncompressed SEC form, regardless of Compressed.
func (k *Key) AddressUncompressed() string {
	h := bitcoinhash.Hash160(k.pub().SerializeUncompressed())
	payload := append([]byte{k.network.P2PKHVersion}, h[:]...)
	return encoding.CheckEncode(payload)
}

// WIF returns the Base58Check Wallet Import Format, or "" if this key has
// no private component.
func (k *Key) WIF() string {
	if k.private == nil {
		return ""
	}
	payload := make([]byte, 0, 34)
	payload = append(payload, k.network.WIFVersion)
	payload = append(payload, k.private.Serialize()...)
	if k.compressed {
		payload = append(payload, 0x01)
	}
	return encoding.CheckEncode(payload)
}

// Equal reports whether k and other encode the same key material: the same
// private scalar if both carry one, otherwise the same public point. The
// compressed flag and network are not part of cryptographic identity and
// are not compared.
func (k *Key) Equal(other *Key) bool {
	if other == nil {
		return false
	}
	if k.private != nil && other.private != nil {
		return hex.EncodeToString(k.private.Serialize()) == hex.EncodeToString(other.private.Serialize())
	}
	return hex.EncodeToString(k.pub().SerializeCompressed()) == hex.EncodeToString(other.pub().SerializeCompressed())
}
