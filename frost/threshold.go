package frost

import (
	"io"
	"math/big"

	"github.com/frostsig/frost/curve"
	"github.com/frostsig/frost/matrix"
)

// ThresholdIncrease is the per-party output of InitThresholdIncrease: the
// increment polynomial's commitments and proof of knowledge, to be
// broadcast to every other participant before shares are exchanged.
type ThresholdIncrease struct {
	newThreshold     int
	increment        []*big.Int // g's coefficients, degree newThreshold-2
	Commitments      []curve.Point
	ProofOfKnowledge *ProofOfKnowledge
}

// InitThresholdIncrease begins raising the group's threshold from its
// current value to newThreshold. It samples an increment polynomial
// g(X) of degree newThreshold-2 (newThreshold-1 coefficients, with no
// constant-term slot of its own): the actual increment to the master
// polynomial is delta(X) = X*g(X), which necessarily contributes 0 at
// X=0 and so preserves the joint public key.
func (p *Participant) InitThresholdIncrease(rand io.Reader, newThreshold int) (*ThresholdIncrease, error) {
	if newThreshold <= p.Threshold {
		return nil, ErrInvalidArgument
	}
	degree := newThreshold - 1 // number of coefficients in g

	g := make([]*big.Int, degree)
	for k := range g {
		c, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, err
		}
		g[k] = c
	}
	commitments := commitPolynomial(g)

	pok, err := generatePoK(rand, p.Index, g[0], commitments[0])
	if err != nil {
		return nil, err
	}

	return &ThresholdIncrease{
		newThreshold:     newThreshold,
		increment:        g,
		Commitments:      commitments,
		ProofOfKnowledge: pok,
	}, nil
}

// thresholdIncreaseShare evaluates this party's increment polynomial g at
// recipient, returning g(recipient). The recipient multiplies every
// received share by its own index before summing, since delta(i) =
// i*g(i).
func (ti *ThresholdIncrease) thresholdIncreaseShare(recipient ParticipantIndex) *big.Int {
	x := new(big.Int).SetUint64(uint64(recipient))
	return evaluatePolynomial(ti.increment, x)
}

// ThresholdIncreaseShare exposes thresholdIncreaseShare to callers driving
// the exchange round.
func (ti *ThresholdIncrease) ThresholdIncreaseShare(recipient ParticipantIndex) *big.Int {
	return ti.thresholdIncreaseShare(recipient)
}

// ApplyThresholdIncrease folds received increment shares into this
// participant's aggregate share and threshold, and extends group
// commitments to the new length. received holds, for each other
// participant j, the value g_j(p.Index) that party published; own is this
// participant's own g(p.Index) evaluation. otherCommitments holds every
// other participant's increment commitment vector (degree newThreshold-2).
func (p *Participant) ApplyThresholdIncrease(
	ti *ThresholdIncrease,
	received map[ParticipantIndex]*big.Int,
	otherCommitments map[ParticipantIndex][]curve.Point,
) error {
	if !p.haveAggregateShare {
		return ErrPreconditionNotMet
	}

	own := ti.thresholdIncreaseShare(p.Index)
	sum := new(big.Int).Set(own)
	for _, share := range received {
		sum.Add(sum, share)
	}
	sum.Mod(sum, curve.Q())

	x := new(big.Int).SetUint64(uint64(p.Index))
	delta := new(big.Int).Mul(x, sum)
	delta.Mod(delta, curve.Q())

	p.AggregateShare = curve.ModScalar(new(big.Int).Add(p.AggregateShare, delta))

	newLen := ti.newThreshold
	extended := make([]curve.Point, newLen)
	copy(extended, p.GroupCommitments)
	for k := len(p.GroupCommitments); k < newLen; k++ {
		extended[k] = curve.Infinity
	}

	addDeltaCommitments := func(commitments []curve.Point) error {
		if len(commitments) != newLen-1 {
			return ErrInvalidArgument
		}
		for k, c := range commitments {
			// delta's coefficient at degree k+1 is g's coefficient at degree k.
			extended[k+1] = extended[k+1].Add(c)
		}
		return nil
	}
	if err := addDeltaCommitments(ti.Commitments); err != nil {
		return err
	}
	for _, commitments := range otherCommitments {
		if err := addDeltaCommitments(commitments); err != nil {
			return err
		}
	}

	p.GroupCommitments = extended
	p.Threshold = newLen
	return nil
}

// DecrementThreshold applies a threshold decrease using a share s* revealed
// by the departing participant at index j*. For each remaining participant
// i, it recomputes:
//
//  1. q := (s_i - s*) * (i - j*)^-1 mod Q; s_i := (s* - j*q) mod Q. This
//     projects the degree-(t-1) polynomial onto the line through (j*, s*)
//     and (i, s_i), reducing effective degree by one.
//  2. A new length-(t-1) group_commitments vector, recovered by inverting
//     a Vandermonde matrix built from t-1 of the remaining indexes against
//     the public verification shares implied by the new, lower-degree
//     polynomial.
func (p *Participant) DecrementThreshold(
	departingShare *big.Int,
	departingIndex ParticipantIndex,
	remainingIndexes []ParticipantIndex,
) error {
	if !p.haveAggregateShare {
		return ErrPreconditionNotMet
	}
	if p.Threshold <= 1 {
		return ErrInvalidArgument
	}

	i := new(big.Int).SetUint64(uint64(p.Index))
	jStar := new(big.Int).SetUint64(uint64(departingIndex))

	denom := new(big.Int).Sub(i, jStar)
	denomInv, err := curve.ModInverse(denom)
	if err != nil {
		return err
	}

	q := new(big.Int).Sub(p.AggregateShare, departingShare)
	q.Mul(q, denomInv)
	q.Mod(q, curve.Q())

	newShare := new(big.Int).Mul(jStar, q)
	newShare.Sub(departingShare, newShare)
	newShare.Mod(newShare, curve.Q())

	newThreshold := p.Threshold - 1
	if len(remainingIndexes) < newThreshold {
		return ErrInvalidArgument
	}
	indexesForVandermonde := remainingIndexes[:newThreshold]

	departingVerificationShare := curve.ScalarBaseMul(departingShare)

	verificationShares := make([]curve.Point, newThreshold)
	for k, idx := range indexesForVandermonde {
		if idx == p.Index {
			verificationShares[k] = curve.ScalarBaseMul(newShare)
			continue
		}
		// Project idx's pre-decrease verification share onto the same
		// line-through-points construction applied to the scalar share
		// in step 1, but carried out in the exponent: Q_idx = G*q_idx =
		// (F_idx - F_j*) * (idx-j*)^-1, then F_idx' = F_j* - j*·Q_idx.
		idxScalar := new(big.Int).SetUint64(uint64(idx))
		idxDenomInv, err := curve.ModInverse(new(big.Int).Sub(idxScalar, jStar))
		if err != nil {
			return err
		}
		oldShare := DerivePublicVerificationShare(p.GroupCommitments, idx)
		qPoint := oldShare.Sub(departingVerificationShare).ScalarMul(idxDenomInv)
		verificationShares[k] = departingVerificationShare.Sub(qPoint.ScalarMul(jStar))
	}

	indexesAsScalars := make([]*big.Int, newThreshold)
	for k, idx := range indexesForVandermonde {
		indexesAsScalars[k] = new(big.Int).SetUint64(uint64(idx))
	}
	v := matrix.Vandermonde(indexesAsScalars)
	vInv, err := v.Inverse()
	if err != nil {
		return ErrPreconditionNotMet
	}

	newCommitments, err := matrix.MultiplyPointMatrix(vInv, verificationShares)
	if err != nil {
		return err
	}

	p.AggregateShare = newShare
	p.GroupCommitments = newCommitments
	p.Threshold = newThreshold
	return nil
}
