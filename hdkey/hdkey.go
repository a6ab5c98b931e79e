// Package hdkey implements BIP-32 hierarchical deterministic key derivation:
// deriving a master key from a seed, deriving private and public child keys
// by index, walking a derivation path, and serializing to/from the
// xprv/xpub extended key format.
//
// The derivation math itself (CKDpriv, CKDpub, the master-from-seed HMAC
// mix) follows the same "mix a chain code into HMAC-SHA512, split the
// output, fold it into the parent" shape the teacher package used for its
// BIP44 path walk, generalized here from "one hardcoded five-level path"
// into arbitrary-depth, explicitly typed derivation.
package hdkey

import (
	"encoding/binary"

	"github.com/elmeriniemela/bitcoinlib/bitcoinhash"
	"github.com/elmeriniemela/bitcoinlib/curve"
	"github.com/elmeriniemela/bitcoinlib/encoding"
	"github.com/elmeriniemela/bitcoinlib/key"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
	"github.com/elmeriniemela/bitcoinlib/networks"
)

const hmacSeedKey = "Bitcoin seed"

// HardenedOffset is the index at and above which a child is hardened
// (derived using the parent's private key, never its public key alone).
const HardenedOffset = hardenedOffset

const maxDerivationRetries = 32

// HDKey wraps a Key with the BIP-32 metadata needed to derive children and
// to serialize as an extended key.
type HDKey struct {
	key               *key.Key
	chainCode         [32]byte
	depth             byte
	parentFingerprint [4]byte
	childIndex        uint32
	network           *networks.Params
}

// NewMaster derives a master HDKey from a seed using
// I = HMAC-SHA512("Bitcoin seed", seed); IL becomes the private scalar, IR
// the chain code.
func NewMaster(seed []byte, net *networks.Params) (*HDKey, error) {
	if len(seed) == 0 {
		return nil, keyerr.New(keyerr.InvalidScalar, "seed must not be empty")
	}
	i := bitcoinhash.HMACSHA512([]byte(hmacSeedKey), seed)
	il, ir := i[:32], i[32:]

	k, err := key.FromPrivateBytes(il, key.WithCompressed(true), key.WithNetwork(net))
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidScalar, err, "seed produced an out-of-range master scalar")
	}

	var cc [32]byte
	copy(cc[:], ir)
	return &HDKey{key: k, chainCode: cc, network: net}, nil
}

// Key returns the wrapped Key.
func (h *HDKey) Key() *key.Key { return h.key }

// IsPrivate reports whether the wrapped Key carries a private scalar.
func (h *HDKey) IsPrivate() bool { return h.key.HasPrivate() }

// Depth returns the number of derivation steps between this key and the
// master (0 at the master itself).
func (h *HDKey) Depth() byte { return h.depth }

// ChildIndex returns the index this key was derived at (0 at the master).
func (h *HDKey) ChildIndex() uint32 { return h.childIndex }

// ParentFingerprint returns the first 4 bytes of HASH160 of the parent's
// compressed public key (all zero at the master).
func (h *HDKey) ParentFingerprint() [4]byte { return h.parentFingerprint }

// Fingerprint returns the first 4 bytes of HASH160 of this key's
// compressed public key, identifying it as a parent to its own children.
func (h *HDKey) Fingerprint() [4]byte {
	return h.fingerprintOf(h.key.Public())
}

func (h *HDKey) fingerprintOf(pub *key.Key) [4]byte {
	h160 := pub.Hash160()
	var fp [4]byte
	copy(fp[:], h160[:4])
	return fp
}

// Neuter returns the public-only counterpart of this HDKey: same chain
// code and path metadata, but the wrapped Key has no private component.
func (h *HDKey) Neuter() *HDKey {
	return &HDKey{
		key:               h.key.Public(),
		chainCode:         h.chainCode,
		depth:             h.depth,
		parentFingerprint: h.parentFingerprint,
		childIndex:        h.childIndex,
		network:           h.network,
	}
}

// Child derives the child HDKey at index, which may be CKDpriv or CKDpub
// depending on whether this key carries a private component and whether
// index is hardened.
func (h *HDKey) Child(index uint32) (*HDKey, error) {
	if index >= HardenedOffset && !h.IsPrivate() {
		return nil, keyerr.New(keyerr.InvalidDerivation, "hardened derivation requires a private parent")
	}

	for attempt := uint32(0); attempt < maxDerivationRetries; attempt++ {
		idx := index + attempt
		child, err := h.deriveChild(idx)
		if err == nil {
			return child, nil
		}
		if !keyerr.Is(err, keyerr.InvalidDerivation) {
			return nil, err
		}
		// IL >= n or the resulting key/point was invalid: BIP-32 calls for
		// retrying at the next index.
	}
	return nil, keyerr.New(keyerr.InvalidDerivation, "exhausted derivation retries")
}

func (h *HDKey) deriveChild(index uint32) (*HDKey, error) {
	if h.IsPrivate() {
		return h.ckdPriv(index)
	}
	return h.ckdPub(index)
}

func (h *HDKey) ckdPriv(index uint32) (*HDKey, error) {
	data := make([]byte, 0, 37)
	if index >= HardenedOffset {
		data = append(data, 0x00)
		data = append(data, h.key.PrivateBytes()...)
	} else {
		data = append(data, h.key.PublicBytes()...)
	}
	data = appendUint32(data, index)

	i := bitcoinhash.HMACSHA512(h.chainCode[:], data)
	il, ir := i[:32], i[32:]

	if !curve.ScalarInRange(il) {
		return nil, keyerr.New(keyerr.InvalidDerivation, "IL out of range")
	}

	childScalar := curve.AddScalarMod(il, h.key.PrivateBytes())
	if !curve.ScalarInRange(childScalar) {
		return nil, keyerr.New(keyerr.InvalidDerivation, "derived scalar out of range")
	}

	childKey, err := key.FromPrivateBytes(childScalar, key.WithCompressed(true), key.WithNetwork(h.network))
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidDerivation, err, "invalid child scalar")
	}

	return h.wrapChild(childKey, ir, index), nil
}

func (h *HDKey) ckdPub(index uint32) (*HDKey, error) {
	if index >= HardenedOffset {
		return nil, keyerr.New(keyerr.InvalidDerivation, "hardened derivation requires a private parent")
	}

	data := append(h.key.PublicBytes(), appendUint32(nil, index)...)
	i := bitcoinhash.HMACSHA512(h.chainCode[:], data)
	il, ir := i[:32], i[32:]

	if !curve.ScalarInRange(il) {
		return nil, keyerr.New(keyerr.InvalidDerivation, "IL out of range")
	}

	offset, err := curve.ScalarMulBase(il)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidDerivation, err, "IL*G failed")
	}
	parentPub, err := curve.ParsePubKey(h.key.PublicBytes())
	if err != nil {
		return nil, err
	}
	childPoint, err := curve.AddPoints(parentPub, offset)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidDerivation, err, "child point is the identity")
	}

	x, y := childPoint.ToECDSA().X, childPoint.ToECDSA().Y
	childKey, err := key.FromPoint(x, y, key.WithCompressed(true), key.WithNetwork(h.network))
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidDerivation, err, "invalid child point")
	}

	return h.wrapChild(childKey, ir, index), nil
}

func (h *HDKey) wrapChild(childKey *key.Key, ir []byte, index uint32) *HDKey {
	var cc [32]byte
	copy(cc[:], ir)
	return &HDKey{
		key:               childKey,
		chainCode:         cc,
		depth:             h.depth + 1,
		parentFingerprint: h.fingerprintOf(h.key.Public()),
		childIndex:        index,
		network:           h.network,
	}
}

func appendUint32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

// SubkeyForPath walks path from this key, hardened or not, returning the
// resulting HDKey.
func (h *HDKey) SubkeyForPath(path string) (*HDKey, error) {
	steps, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	cur := h
	for _, s := range steps {
		cur, err = cur.Child(s.index)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
