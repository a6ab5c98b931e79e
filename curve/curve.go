// Package curve wraps github.com/decred/dcrd/dcrec/secp256k1/v4 with the
// handful of domain operations the rest of this module needs: scalar
// multiplication of the generator, SEC compression/decompression, and
// point addition. Scalar multiplication and parsing are delegated to the
// vetted constant-time library per spec; point addition for non-hardened
// public child key derivation (§4.6 CKDpub) is not part of that library's
// exported surface, so it is implemented here directly against the affine
// short-Weierstrass addition formula over the field prime, exactly as
// spec.md §4.3 allows ("in-tree implementation is acceptable"). Only
// public, already-known points are ever added this way — no private
// scalar ever flows through this code path, so the constant-time
// requirement (which applies to private-key scalar multiplication) does
// not apply to it.
package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/elmeriniemela/bitcoinlib/keyerr"
)

// N is the order of the secp256k1 group.
var N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// P is the secp256k1 field prime.
var P, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)

// PrivateKey and PublicKey are re-exported so callers only need to import
// this package, not the underlying secp256k1 library, for the common case.
type PrivateKey = secp256k1.PrivateKey
type PublicKey = secp256k1.PublicKey

// PrivateKeyFromScalar builds a private key from a big-endian scalar,
// validating it is in [1, N-1].
func PrivateKeyFromScalar(b []byte) (*PrivateKey, error) {
	n := new(big.Int).SetBytes(b)
	if n.Sign() == 0 || n.Cmp(N) >= 0 {
		return nil, keyerr.New(keyerr.InvalidScalar, "scalar must be in [1, n-1]")
	}
	return secp256k1.PrivKeyFromBytes(b), nil
}

// ScalarMulBase returns scalar*G as a public key.
func ScalarMulBase(scalar []byte) (*PublicKey, error) {
	priv, err := PrivateKeyFromScalar(scalar)
	if err != nil {
		return nil, err
	}
	return priv.PubKey(), nil
}

// ParsePubKey parses a 33-byte compressed or 65-byte uncompressed SEC
// public key, rejecting bytes that do not decode to a point on the curve.
func ParsePubKey(b []byte) (*PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidPoint, err, "invalid secp256k1 point")
	}
	return pub, nil
}

// AddPoints returns p1+p2 on the curve. It fails with InvalidPoint if the
// sum is the point at infinity, since no valid key can be derived from it
// (BIP-32 calls for retrying derivation with the next index in that case).
func AddPoints(p1, p2 *PublicKey) (*PublicKey, error) {
	ecdsa1 := p1.ToECDSA()
	ecdsa2 := p2.ToECDSA()

	x1, y1 := ecdsa1.X, ecdsa1.Y
	x2, y2 := ecdsa2.X, ecdsa2.Y

	var x3, y3 *big.Int
	if x1.Cmp(x2) == 0 {
		if y1.Cmp(y2) != 0 {
			// P + (-P) = point at infinity.
			return nil, keyerr.New(keyerr.InvalidPoint, "point addition yielded the identity")
		}
		x3, y3 = doublePoint(x1, y1)
	} else {
		x3, y3 = addPoint(x1, y1, x2, y2)
	}

	return newPublicKey(x3, y3)
}

// PointFromAffine builds a public key from affine (X, Y) coordinates,
// rejecting values that are not a point on the curve.
func PointFromAffine(x, y *big.Int) (*PublicKey, error) {
	return newPublicKey(x, y)
}

func addPoint(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	// lambda = (y2 - y1) / (x2 - x1) mod P
	num := new(big.Int).Sub(y2, y1)
	den := new(big.Int).Sub(x2, x1)
	lambda := mulModInverse(num, den)
	return pointFromLambda(lambda, x1, y1, x2)
}

func doublePoint(x1, y1 *big.Int) (*big.Int, *big.Int) {
	// lambda = 3*x1^2 / (2*y1) mod P
	num := new(big.Int).Mul(x1, x1)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Mul(y1, big.NewInt(2))
	lambda := mulModInverse(num, den)
	return pointFromLambda(lambda, x1, y1, x1)
}

func pointFromLambda(lambda, x1, y1, x2 *big.Int) (*big.Int, *big.Int) {
	// x3 = lambda^2 - x1 - x2 mod P
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, P)

	// y3 = lambda*(x1 - x3) - y1 mod P
	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, y1)
	y3.Mod(y3, P)

	return x3, y3
}

func mulModInverse(num, den *big.Int) *big.Int {
	denInv := new(big.Int).ModInverse(new(big.Int).Mod(den, P), P)
	lambda := new(big.Int).Mul(num, denInv)
	return lambda.Mod(lambda, P)
}

func newPublicKey(x, y *big.Int) (*PublicKey, error) {
	var fx, fy secp256k1.FieldVal
	fx.SetByteSlice(x.Bytes())
	fy.SetByteSlice(y.Bytes())
	pub := secp256k1.NewPublicKey(&fx, &fy)
	// Round-trip through SerializeUncompressed/ParsePubKey to confirm the
	// resulting point is actually on the curve.
	parsed, err := secp256k1.ParsePubKey(pub.SerializeUncompressed())
	if err != nil {
		return nil, keyerr.Wrap(keyerr.InvalidPoint, err, "point addition left the curve")
	}
	return parsed, nil
}

// AddScalarMod returns (a+b) mod N as a 32-byte big-endian scalar. It does
// not report whether the un-reduced sum reached N; callers check the range
// of the inputs and of the result with ScalarInRange.
func AddScalarMod(a, b []byte) []byte {
	sum := new(big.Int).Add(new(big.Int).SetBytes(a), new(big.Int).SetBytes(b))
	sum.Mod(sum, N)
	out := make([]byte, 32)
	sum.FillBytes(out)
	return out
}

// ScalarInRange reports whether b, read as a big-endian integer, is a
// valid secp256k1 scalar: nonzero and less than N.
func ScalarInRange(b []byte) bool {
	n := new(big.Int).SetBytes(b)
	return n.Sign() != 0 && n.Cmp(N) < 0
}
