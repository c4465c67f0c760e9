package frost

import (
	"crypto/sha256"
	"io"
	"math/big"

	"github.com/frostsig/frost/curve"
)

// pokTag is the literal ASCII domain-separator the proof-of-knowledge hash
// uses. Unlike the BIP-340 tagged-hash construction curve.TaggedHash
// implements, this hash is a single plain SHA-256 over the concatenated
// inputs, matching the reference's hash-for-PoK construction exactly: it
// must be reproduced byte-for-byte for interop, including the fact that
// the resulting challenge is used unreduced (see generatePoK).
const pokTag = "FROST-BIP340"

// generatePolynomial samples a degree-(threshold-1) polynomial over Z/Q
// with the given constant term, drawing every higher coefficient uniformly
// from a cryptographic source. The constant term is the caller's secret
// contribution (DKG) or, for a refresh round, the zero polynomial's
// constant term.
func generatePolynomial(rand io.Reader, constantTerm *big.Int, threshold int) ([]*big.Int, error) {
	coefficients := make([]*big.Int, threshold)
	coefficients[0] = curve.ModScalar(constantTerm)
	for k := 1; k < threshold; k++ {
		c, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, err
		}
		coefficients[k] = c
	}
	return coefficients, nil
}

// evaluatePolynomial computes f(x) mod Q for the polynomial whose
// coefficients are given lowest-degree first, using Horner's scheme from
// the highest-degree coefficient down.
func evaluatePolynomial(coefficients []*big.Int, x *big.Int) *big.Int {
	result := big.NewInt(0)
	for k := len(coefficients) - 1; k >= 0; k-- {
		result.Mul(result, x)
		result.Add(result, coefficients[k])
		result.Mod(result, curve.Q())
	}
	return result
}

// commitPolynomial returns the coefficient commitments C_k = G·a_k for
// every coefficient of a polynomial.
func commitPolynomial(coefficients []*big.Int) []curve.Point {
	commitments := make([]curve.Point, len(coefficients))
	for k, a := range coefficients {
		commitments[k] = curve.ScalarBaseMul(a)
	}
	return commitments
}

// generatePoK produces the Schnorr proof of knowledge of secret (the
// constant term a_{i,0}) for the given participant index, certifying
// knowledge of the discrete log of commitment = G·secret.
//
// The challenge c_i is computed as SHA-256(i_byte || "FROST-BIP340" ||
// SEC1(commitment) || SEC1(R_i)) and used as an unreduced big integer — it
// is NOT taken modulo Q before being multiplied into mu_i. This matches the
// reference design; the verification equation still holds because
// Q·G = infinity regardless of how large c_i is.
func generatePoK(
	rand io.Reader,
	index ParticipantIndex,
	secret *big.Int,
	commitment curve.Point,
) (*ProofOfKnowledge, error) {
	k, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	r := curve.ScalarBaseMul(k)

	c := pokChallenge(index, commitment, r)

	mu := new(big.Int).Mul(secret, c)
	mu.Add(mu, k)
	mu.Mod(mu, curve.Q())

	return &ProofOfKnowledge{R: r, Mu: mu}, nil
}

// verifyPoK checks a proof of knowledge against the claimed commitment to
// the secret's constant-term. It returns false, never an error, on a
// failing proof — cryptographic checks are reported as booleans, not
// errors, per this package's error-handling convention.
func verifyPoK(index ParticipantIndex, commitment curve.Point, pok *ProofOfKnowledge) bool {
	if pok == nil || commitment.IsInfinity() {
		return false
	}
	c := pokChallenge(index, commitment, pok.R)

	lhs := pok.R
	rhs := curve.ScalarBaseMul(pok.Mu).Add(commitment.ScalarMul(new(big.Int).Neg(c)))
	return lhs.Equal(rhs)
}

// pokChallenge computes the unreduced proof-of-knowledge challenge scalar.
func pokChallenge(index ParticipantIndex, commitment, r curve.Point) *big.Int {
	if index == 0 || index > 255 {
		return big.NewInt(0)
	}
	h := sha256.New()
	h.Write([]byte{byte(index)})
	h.Write([]byte(pokTag))
	h.Write(curve.EncodeCompressed(commitment))
	h.Write(curve.EncodeCompressed(r))
	return new(big.Int).SetBytes(h.Sum(nil))
}
