package frost

import (
	"io"
	"math/big"

	"github.com/frostsig/frost/curve"
)

// GenerateNoncePair draws a fresh signing nonce pair (d, e) uniformly from
// [0, Q) using rand, which must be a cryptographic source. The matching
// commitment pair (D, E) = (G·d, G·e) is published to the Aggregator; the
// nonce pair itself must never leave the participant and must be used for
// exactly one Sign call.
func (p *Participant) GenerateNoncePair(rand io.Reader) (*NonceCommitmentPair, error) {
	d, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}
	e, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}

	p.NoncePair = &NoncePair{D: d, E: e}
	p.NonceCommitmentPair = &NonceCommitmentPair{
		D: curve.ScalarBaseMul(d),
		E: curve.ScalarBaseMul(e),
	}
	return p.NonceCommitmentPair, nil
}

// Sign computes this participant's signature share z_i for message over
// the signer set described by agg, an Aggregator constructed from the same
// (message, nonce commitment pairs, participant indexes) every other
// signer in the session is using. It implements FROST's per-signer half of
// signing:
//
//  1. R := agg.GroupCommitment(). Fails with ErrDegenerateCommitment if R
//     is the point at infinity.
//  2. Y_eff, parity_p := the session's effective (possibly tweaked) key.
//  3. c := the BIP-340 challenge hash of (R, Y_eff, message).
//  4. (d', e') := (d, e), negated mod Q if R has odd Y.
//  5. rho := this signer's binding value.
//  6. lambda := this signer's Lagrange coefficient at x=0 over the signer
//     set.
//  7. s' := this signer's aggregate share, negated mod Q if Y_eff's parity
//     disagrees with parity_p.
//  8. Return z_i := (d' + e'*rho + lambda*s'*c) mod Q.
func (p *Participant) Sign(message []byte, agg *Aggregator, signerIndexes []ParticipantIndex) (*big.Int, error) {
	if p.NoncePair == nil {
		return nil, ErrPreconditionNotMet
	}
	if !p.haveAggregateShare {
		return nil, ErrPreconditionNotMet
	}

	r, err := agg.GroupCommitment()
	if err != nil {
		return nil, err
	}

	yEff, parityP, err := agg.EffectiveKey()
	if err != nil {
		return nil, err
	}

	c := ChallengeHash(r, yEff, message)

	d, e := p.NoncePair.D, p.NoncePair.E
	if !r.HasEvenY() {
		d = curve.ModScalar(new(big.Int).Neg(d))
		e = curve.ModScalar(new(big.Int).Neg(e))
	}

	rho, err := BindingValue(p.Index, p.Participant, message, agg.pairs, signerIndexes)
	if err != nil {
		return nil, err
	}

	lambda, err := lagrangeCoefficientAtZero(signerIndexes, p.Index)
	if err != nil {
		return nil, err
	}

	s := new(big.Int).Set(p.AggregateShare)
	effParity := 0
	if !yEff.IsInfinity() && !yEff.HasEvenY() {
		effParity = 1
	}
	if effParity != parityP {
		s = curve.ModScalar(new(big.Int).Neg(s))
	}

	z := new(big.Int).Mul(e, rho)
	z.Add(z, d)

	term := new(big.Int).Mul(lambda, s)
	term.Mul(term, c)
	z.Add(z, term)
	z.Mod(z, curve.Q())

	// The nonce pair is single-use; clear it so a programming error cannot
	// reuse it across two signing sessions.
	p.NoncePair = nil

	return z, nil
}
