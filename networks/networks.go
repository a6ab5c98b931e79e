// Package networks provides the named parameter sets (mainnet, testnet)
// that supply version bytes for WIF, P2PKH addresses, and extended keys.
// This is configuration-as-data in the style of coin-type/coin_type.go in
// the teacher package: a small constants table keyed by name, with no
// behavior beyond lookup.
package networks

// Params is a named set of version bytes for one Bitcoin-style network.
type Params struct {
	Name string

	// WIFVersion prefixes a Wallet Import Format private key.
	WIFVersion byte

	// P2PKHVersion prefixes a pay-to-public-key-hash address.
	P2PKHVersion byte

	// HDPrivateVersion prefixes a serialized extended private key (xprv).
	HDPrivateVersion [4]byte

	// HDPublicVersion prefixes a serialized extended public key (xpub).
	HDPublicVersion [4]byte
}

var (
	// Mainnet is the production Bitcoin network parameter set.
	Mainnet = &Params{
		Name:             "mainnet",
		WIFVersion:       0x80,
		P2PKHVersion:     0x00,
		HDPrivateVersion: [4]byte{0x04, 0x88, 0xAD, 0xE4},
		HDPublicVersion:  [4]byte{0x04, 0x88, 0xB2, 0x1E},
	}

	// Testnet is the Bitcoin test network parameter set.
	Testnet = &Params{
		Name:             "testnet",
		WIFVersion:       0xEF,
		P2PKHVersion:     0x6F,
		HDPrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94},
		HDPublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xCF},
	}

	all = []*Params{Mainnet, Testnet}
)

// ByWIFVersion finds the network whose WIF version byte matches b.
func ByWIFVersion(b byte) (*Params, bool) {
	for _, n := range all {
		if n.WIFVersion == b {
			return n, true
		}
	}
	return nil, false
}

// ByP2PKHVersion finds the network whose P2PKH version byte matches b.
func ByP2PKHVersion(b byte) (*Params, bool) {
	for _, n := range all {
		if n.P2PKHVersion == b {
			return n, true
		}
	}
	return nil, false
}

// ByHDPrivateVersion finds the network whose xprv prefix matches b.
func ByHDPrivateVersion(b [4]byte) (*Params, bool) {
	for _, n := range all {
		if n.HDPrivateVersion == b {
			return n, true
		}
	}
	return nil, false
}

// ByHDPublicVersion finds the network whose xpub prefix matches b.
func ByHDPublicVersion(b [4]byte) (*Params, bool) {
	for _, n := range all {
		if n.HDPublicVersion == b {
			return n, true
		}
	}
	return nil, false
}
