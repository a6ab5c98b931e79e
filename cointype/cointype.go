// Package cointype provides constants for registered cryptocurrency coin
// types as defined in BIP-44 and the SLIP-44 registry
// (https://github.com/satoshilabs/slips/blob/master/slip-0044.md), for
// building BIP-44 paths ("m/44'/coin_type'/account'/change/index") to feed
// to hdkey.SubkeyForPath.
package cointype

const (
	Bitcoin = 0
	Testnet = 1

	// Tron is 195 per the SLIP-44 registry. An earlier version of this
	// constant in this codebase had it as 159, which is Decred's coin
	// type, not Tron's.
	Tron = 195
)
