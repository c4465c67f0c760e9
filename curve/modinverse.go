package curve

import (
	"errors"
	"io"
	"math/big"
)

// ErrNoInverse is returned when a scalar has no multiplicative inverse
// modulo the group order, i.e. when it is congruent to zero mod Q.
var ErrNoInverse = errors.New("curve: no modular inverse")

// ModInverse returns the multiplicative inverse of a modulo the group order
// Q. It returns ErrNoInverse if a is congruent to 0 mod Q, since 0 has no
// inverse.
func ModInverse(a *big.Int) (*big.Int, error) {
	amod := new(big.Int).Mod(a, curve.N)
	if amod.Sign() == 0 {
		return nil, ErrNoInverse
	}
	inv := new(big.Int).ModInverse(amod, curve.N)
	if inv == nil {
		return nil, ErrNoInverse
	}
	return inv, nil
}

// ModScalar reduces a modulo the group order Q.
func ModScalar(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, curve.N)
}

// RandomScalar draws a uniformly random nonzero scalar modulo Q, reading
// from rand, which callers must supply as crypto/rand.Reader or an
// equivalent CSPRNG. A non-cryptographic source such as math/rand must
// never be used here: every secret scalar in this package (DKG
// coefficients, proof-of-knowledge nonces, signing nonces) depends on this
// function for its randomness.
func RandomScalar(rand io.Reader) (*big.Int, error) {
	for {
		b := make([]byte, 32)
		if _, err := io.ReadFull(rand, b); err != nil {
			return nil, err
		}
		s := new(big.Int).SetBytes(b)
		s.Mod(s, curve.N)
		if s.Sign() != 0 {
			return s, nil
		}
	}
}
