package frost

import (
	"crypto/sha256"
	"math/big"

	"github.com/frostsig/frost/curve"
)

// Aggregator is the per-signing-session object that computes the group
// commitment and binding values from the signers' published nonce
// commitments, derives the BIP-340 challenge, applies an optional
// BIP-32/Taproot tweak to the joint key, and combines partial signature
// shares into a final (R, z) signature.
//
// An Aggregator is assembled fresh for each signing session; it holds no
// secrets and performs no randomness-dependent computation.
type Aggregator struct {
	publicKey  curve.Point
	message    []byte
	n          int
	pairs      map[ParticipantIndex]NonceCommitmentPair
	indexes    []ParticipantIndex
	hasTweak   bool
	bip32Tweak *big.Int
	taproot    *big.Int
}

// NewAggregator validates the tweak invariant — bip32Tweak and
// taprootTweak must be either both nil or both non-nil — and returns an
// Aggregator ready to compute a group commitment for the given signer set.
// n is the total number of participants in the group, used to bound-check
// participant indexes; pairs need only contain entries for indexes.
func NewAggregator(
	publicKey curve.Point,
	message []byte,
	n int,
	pairs map[ParticipantIndex]NonceCommitmentPair,
	indexes []ParticipantIndex,
	bip32Tweak, taprootTweak *big.Int,
) (*Aggregator, error) {
	if (bip32Tweak == nil) != (taprootTweak == nil) {
		return nil, ErrInvalidArgument
	}
	if err := requireDistinct(indexes); err != nil {
		return nil, err
	}
	for _, idx := range indexes {
		if int(idx) > n {
			return nil, ErrIndexOutOfRange
		}
		if _, ok := pairs[idx]; !ok {
			return nil, ErrInvalidArgument
		}
	}

	return &Aggregator{
		publicKey:  publicKey,
		message:    message,
		n:          n,
		pairs:      pairs,
		indexes:    indexes,
		hasTweak:   bip32Tweak != nil,
		bip32Tweak: bip32Tweak,
		taproot:    taprootTweak,
	}, nil
}

// BindingValue computes rho_i = H(i_byte || m || concat_j(D_j || E_j)) mod
// Q for j ranging over indexes in the order given, with H = SHA-256. index
// must appear within 1..n; indexes must be pairwise distinct and present in
// pairs.
func BindingValue(
	index ParticipantIndex,
	n int,
	message []byte,
	pairs map[ParticipantIndex]NonceCommitmentPair,
	indexes []ParticipantIndex,
) (*big.Int, error) {
	if index == 0 || int(index) > n || index > 255 {
		return nil, ErrIndexOutOfRange
	}

	h := sha256.New()
	h.Write([]byte{byte(index)})
	h.Write(message)
	for _, j := range indexes {
		pair, ok := pairs[j]
		if !ok {
			return nil, ErrInvalidArgument
		}
		h.Write(curve.EncodeCompressed(pair.D))
		h.Write(curve.EncodeCompressed(pair.E))
	}

	rho := new(big.Int).SetBytes(h.Sum(nil))
	return rho.Mod(rho, curve.Q()), nil
}

// GroupCommitment computes R = sum_{i in indexes} (D_i + rho_i * E_i). It
// returns ErrDegenerateCommitment if the result is the point at infinity;
// the session is unrecoverable and the caller must restart with fresh
// nonces.
func (a *Aggregator) GroupCommitment() (curve.Point, error) {
	r := curve.Infinity
	for _, idx := range a.indexes {
		pair := a.pairs[idx]
		rho, err := BindingValue(idx, a.n, a.message, a.pairs, a.indexes)
		if err != nil {
			return curve.Point{}, err
		}
		r = r.Add(pair.D.Add(pair.E.ScalarMul(rho)))
	}
	if r.IsInfinity() {
		return curve.Point{}, ErrDegenerateCommitment
	}
	return r, nil
}

// EffectiveKey returns the joint public key to use for this session's
// challenge hash and signature verification: the untweaked public key if
// no tweak is configured, or the tweaked key and its parity bit otherwise.
func (a *Aggregator) EffectiveKey() (key curve.Point, parity int, err error) {
	if !a.hasTweak {
		return a.publicKey, 0, nil
	}
	key, _, parity, err = Tweak(a.publicKey, a.bip32Tweak, a.taproot)
	return key, parity, err
}

// ChallengeHash computes the BIP-340 tagged challenge c = H(R || Y_eff || m)
// mod Q, using the x-only encodings of R and Y_eff.
func ChallengeHash(r, yEff curve.Point, message []byte) *big.Int {
	return curve.HashToScalar(
		"BIP0340/challenge",
		curve.EncodeXOnly(r),
		curve.EncodeXOnly(yEff),
		message,
	)
}

// Combine assembles partial signature shares into the final 64-byte
// signature: x_only(R) || z_be_32, where z is the sum of the shares, plus
// c*tau when a tweak is configured.
func (a *Aggregator) Combine(shares map[ParticipantIndex]*big.Int) ([]byte, error) {
	r, err := a.GroupCommitment()
	if err != nil {
		return nil, err
	}
	yEff, _, err := a.EffectiveKey()
	if err != nil {
		return nil, err
	}
	c := ChallengeHash(r, yEff, a.message)

	z := big.NewInt(0)
	for _, idx := range a.indexes {
		share, ok := shares[idx]
		if !ok {
			return nil, ErrInvalidArgument
		}
		z.Add(z, share)
	}
	z.Mod(z, curve.Q())

	if a.hasTweak {
		_, tau, _, err := Tweak(a.publicKey, a.bip32Tweak, a.taproot)
		if err != nil {
			return nil, err
		}
		cTau := new(big.Int).Mul(c, tau)
		z.Add(z, cTau)
		z.Mod(z, curve.Q())
	}

	out := make([]byte, 0, 64)
	out = append(out, curve.EncodeXOnly(r)...)
	out = append(out, curve.I2OSP(z, 32)...)
	return out, nil
}

// Tweak implements the BIP-32/Taproot additive tweak composition:
//
//  1. K1 := Y + G*bip32Tweak. If K1.y is odd, K1 := -K1, remember parity
//     p=1, and negate bip32Tweak; otherwise p=0.
//  2. K := K1 + G*taprootTweak. tau := bip32Tweak' + taprootTweak mod Q.
//     If K.y is odd, tau := -tau mod Q.
//  3. Return (K, tau, p).
//
// It returns ErrInvalidKey if either intermediate point is the point at
// infinity (has no affine y).
func Tweak(y curve.Point, bip32Tweak, taprootTweak *big.Int) (k curve.Point, tau *big.Int, parity int, err error) {
	k1 := y.Add(curve.ScalarBaseMul(bip32Tweak))
	if k1.IsInfinity() {
		return curve.Point{}, nil, 0, ErrInvalidKey
	}

	bip32Adj := curve.ModScalar(bip32Tweak)
	if !k1.HasEvenY() {
		k1 = k1.Negate()
		parity = 1
		bip32Adj = curve.ModScalar(new(big.Int).Neg(bip32Tweak))
	}

	k = k1.Add(curve.ScalarBaseMul(taprootTweak))
	if k.IsInfinity() {
		return curve.Point{}, nil, 0, ErrInvalidKey
	}

	tau = curve.ModScalar(new(big.Int).Add(bip32Adj, taprootTweak))
	if !k.HasEvenY() {
		tau = curve.ModScalar(new(big.Int).Neg(tau))
	}

	return k, tau, parity, nil
}
