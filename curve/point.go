// Package curve wraps the secp256k1 group used by [BIP-340] Schnorr
// signatures in the point and scalar arithmetic the FROST threshold
// signature protocol needs: group addition, scalar multiplication, and the
// two serialization formats the protocol exchanges on the wire.
//
// [BIP-340]: https://github.com/bitcoin/bips/blob/master/bip-0340.mediawiki
package curve

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto/secp256k1"
)

// curve is the secp256k1 group instance every Point operation is performed
// against.
var curve = secp256k1.S256()

// P is the field prime secp256k1 coordinates are reduced modulo.
func P() *big.Int {
	return new(big.Int).Set(curve.P)
}

// Q is the order of the group generated by G. Scalars (private key shares,
// nonces, coefficients, signature components) are reduced modulo Q.
func Q() *big.Int {
	return new(big.Int).Set(curve.N)
}

// Point is a secp256k1 group element. Unlike the teacher's convention of
// representing the identity as the non-curve coordinate pair (0,0), Point
// carries an explicit infinity flag so that a degenerate commitment (spec
// invariant: group commitments must never be the point at infinity) can be
// detected without relying on a coordinate value that happens not to lie on
// the curve.
type Point struct {
	infinity bool
	x, y     *big.Int
}

// Infinity is the identity element of the group.
var Infinity = Point{infinity: true}

// G is the conventional secp256k1 generator point.
func G() Point {
	return Point{x: new(big.Int).Set(curve.Gx), y: new(big.Int).Set(curve.Gy)}
}

// NewAffine builds a Point from affine coordinates. The caller is
// responsible for having validated that (x, y) lies on the curve; callers
// that accept untrusted input should go through DecodeCompressed or
// DecodeXOnly instead, which perform that check.
func NewAffine(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// IsInfinity reports whether p is the identity element.
func (p Point) IsInfinity() bool {
	return p.infinity
}

// X returns the affine X coordinate. It panics if p is the point at
// infinity; callers must check IsInfinity first.
func (p Point) X() *big.Int {
	if p.infinity {
		panic("curve: X of point at infinity")
	}
	return new(big.Int).Set(p.x)
}

// Y returns the affine Y coordinate. It panics if p is the point at
// infinity; callers must check IsInfinity first.
func (p Point) Y() *big.Int {
	if p.infinity {
		panic("curve: Y of point at infinity")
	}
	return new(big.Int).Set(p.y)
}

// HasEvenY reports whether p's Y coordinate is even, as required by
// [BIP-340] for the x-only point encoding.
func (p Point) HasEvenY() bool {
	if p.infinity {
		return false
	}
	return p.y.Bit(0) == 0
}

// IsOnCurve reports whether p satisfies the curve equation. The point at
// infinity is, by definition, not considered on-curve by this check; use
// IsInfinity to test for it explicitly.
func (p Point) IsOnCurve() bool {
	if p.infinity {
		return false
	}
	return curve.IsOnCurve(p.x, p.y)
}

// Equal reports whether p and q represent the same group element.
func (p Point) Equal(q Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// Negate returns -p.
func (p Point) Negate() Point {
	if p.infinity {
		return Infinity
	}
	return Point{x: new(big.Int).Set(p.x), y: new(big.Int).Sub(curve.P, p.y)}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	x, y := curve.Add(p.x, p.y, q.x, q.y)
	if x.Sign() == 0 && y.Sign() == 0 {
		return Infinity
	}
	return Point{x: x, y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

// Double returns 2p.
func (p Point) Double() Point {
	return p.Add(p)
}

// ScalarMul returns k*p for a scalar k, which is reduced modulo the group
// order before multiplication.
func (p Point) ScalarMul(k *big.Int) Point {
	if p.infinity {
		return Infinity
	}
	kmod := new(big.Int).Mod(k, curve.N)
	if kmod.Sign() == 0 {
		return Infinity
	}
	x, y := curve.ScalarMult(p.x, p.y, kmod.Bytes())
	if x.Sign() == 0 && y.Sign() == 0 {
		return Infinity
	}
	return Point{x: x, y: y}
}

// Normalize returns whichever of {p, -p} has the smaller Y coordinate. It
// plays no role in the signing critical path — BIP-340's x-only encoding
// already fixes the even-Y convention for that — it exists so tests can
// compare two points for equality up to sign without depending on parity.
// The point at infinity normalizes to itself.
func (p Point) Normalize() Point {
	if p.infinity {
		return p
	}
	negY := new(big.Int).Sub(curve.P, p.y)
	if negY.Cmp(p.y) < 0 {
		return Point{x: new(big.Int).Set(p.x), y: negY}
	}
	return Point{x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y)}
}

// ScalarBaseMul returns k*G for a scalar k, which is reduced modulo the
// group order before multiplication.
func ScalarBaseMul(k *big.Int) Point {
	kmod := new(big.Int).Mod(k, curve.N)
	if kmod.Sign() == 0 {
		return Infinity
	}
	x, y := curve.ScalarBaseMult(kmod.Bytes())
	return Point{x: x, y: y}
}
