package hdkey

import (
	"encoding/binary"
	"fmt"

	"github.com/elmeriniemela/bitcoinlib/encoding"
	"github.com/elmeriniemela/bitcoinlib/key"
	"github.com/elmeriniemela/bitcoinlib/keyerr"
	"github.com/elmeriniemela/bitcoinlib/networks"
)

const extendedKeyLen = 78

// Serialize encodes this key as a 78-byte extended key wrapped in
// Base58Check: version ‖ depth ‖ parent_fingerprint ‖ child_index ‖
// chain_code ‖ key material. The version and key material depend on
// whether this HDKey carries a private component.
func (h *HDKey) Serialize() string {
	buf := make([]byte, 0, extendedKeyLen)

	var version [4]byte
	if h.IsPrivate() {
		version = h.network.HDPrivateVersion
	} else {
		version = h.network.HDPublicVersion
	}
	buf = append(buf, version[:]...)
	buf = append(buf, h.depth)
	buf = append(buf, h.parentFingerprint[:]...)
	buf = appendUint32(buf, h.childIndex)
	buf = append(buf, h.chainCode[:]...)

	if h.IsPrivate() {
		buf = append(buf, 0x00)
		buf = append(buf, h.key.PrivateBytes()...)
	} else {
		buf = append(buf, h.key.PublicBytes()...)
	}

	return encoding.CheckEncode(buf)
}

// ParseExtendedKey decodes a Base58Check xprv/xpub (or tprv/tpub) string.
// The network and whether the result is private are inferred from the
// 4-byte version prefix.
func ParseExtendedKey(s string) (*HDKey, error) {
	decoded, err := encoding.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) != extendedKeyLen {
		return nil, keyerr.Newf(keyerr.UnrecognizedFormat, "extended key must decode to %d bytes, got %d", extendedKeyLen, len(decoded))
	}

	var version [4]byte
	copy(version[:], decoded[:4])

	depth := decoded[4]
	var parentFP [4]byte
	copy(parentFP[:], decoded[5:9])
	childIndex := binary.BigEndian.Uint32(decoded[9:13])
	var chainCode [32]byte
	copy(chainCode[:], decoded[13:45])
	material := decoded[45:78]

	net, isPrivate, err := classifyVersion(version)
	if err != nil {
		return nil, err
	}

	var k *key.Key
	if isPrivate {
		if material[0] != 0x00 {
			return nil, keyerr.New(keyerr.UnrecognizedFormat, "private extended key material must start with 0x00")
		}
		k, err = key.FromPrivateBytes(material[1:], key.WithCompressed(true), key.WithNetwork(net))
	} else {
		k, err = key.FromPublicBytes(material, key.WithCompressed(true), key.WithNetwork(net))
	}
	if err != nil {
		return nil, err
	}

	return &HDKey{
		key:               k,
		chainCode:         chainCode,
		depth:             depth,
		parentFingerprint: parentFP,
		childIndex:        childIndex,
		network:           net,
	}, nil
}

func classifyVersion(version [4]byte) (*networks.Params, bool, error) {
	if net, ok := networks.ByHDPrivateVersion(version); ok {
		return net, true, nil
	}
	if net, ok := networks.ByHDPublicVersion(version); ok {
		return net, false, nil
	}
	return nil, false, keyerr.Newf(keyerr.UnrecognizedFormat, "unrecognized extended key version %x", version)
}

// String implements fmt.Stringer as the extended key string, matching the
// convention that printing an HDKey shows its serialization.
func (h *HDKey) String() string {
	return h.Serialize()
}

// Info returns a human-readable dump of this key's metadata. It is
// non-normative and intended for debugging and REPL use.
func (h *HDKey) Info() string {
	return fmt.Sprintf(
		"network: %s\ndepth: %d\nparent fingerprint: %x\nchild index: %d\nchain code: %x\nprivate: %v\nextended: %s",
		h.network.Name, h.depth, h.parentFingerprint, h.childIndex, h.chainCode, h.IsPrivate(), h.Serialize(),
	)
}
