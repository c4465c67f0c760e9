package frost

import (
	"io"
	"math/big"

	"github.com/frostsig/frost/curve"
)

// Participant is the per-party state machine for a FROST threshold group:
// it holds one party's long-term key material and steps through DKG, and
// later through refresh, threshold change, repair, and signing. Fields
// populate in the order the protocol's rounds require them; operations
// that need a field not yet populated return ErrPreconditionNotMet rather
// than operate on a zero value.
type Participant struct {
	Index       ParticipantIndex
	Threshold   int
	Participant int // total participant count, n

	Coefficients           []*big.Int
	CoefficientCommitments []curve.Point
	ProofOfKnowledge       *ProofOfKnowledge

	Shares map[ParticipantIndex]*big.Int

	haveAggregateShare bool
	AggregateShare     *big.Int

	havePublicKey bool
	PublicKey     curve.Point

	GroupCommitments []curve.Point

	NoncePair           *NoncePair
	NonceCommitmentPair *NonceCommitmentPair

	RepairShares           []*big.Int
	RepairShareCommitments []curve.Point
	RepairParticipants     []ParticipantIndex
	AggregateRepairShare   *big.Int

	// Logger receives round-transition breadcrumbs (DKG round completed,
	// refresh round completed, repair round completed). A nil Logger logs
	// through the standard library's default logger rather than dropping
	// breadcrumbs silently; set it to silence them or to route them into a
	// caller's own logging stack.
	Logger Logger
}

// InitKeygen starts distributed key generation for participant index within
// a group of n parties requiring threshold signers. It samples a uniformly
// random degree-(threshold-1) polynomial via rand (which must be a
// cryptographic source such as crypto/rand.Reader), publishes its
// coefficient commitments, and produces a Schnorr proof of knowledge of the
// constant-term secret.
func InitKeygen(rand io.Reader, index ParticipantIndex, threshold, n int) (*Participant, error) {
	if index == 0 || int(index) > n || threshold <= 0 || threshold > n {
		return nil, ErrInvalidArgument
	}

	secret, err := curve.RandomScalar(rand)
	if err != nil {
		return nil, err
	}

	coefficients, err := generatePolynomial(rand, secret, threshold)
	if err != nil {
		return nil, err
	}
	commitments := commitPolynomial(coefficients)

	pok, err := generatePoK(rand, index, coefficients[0], commitments[0])
	if err != nil {
		return nil, err
	}

	return &Participant{
		Index:                  index,
		Threshold:              threshold,
		Participant:            n,
		Coefficients:           coefficients,
		CoefficientCommitments: commitments,
		ProofOfKnowledge:       pok,
	}, nil
}

// VerifyProofOfKnowledge checks the proof of knowledge a peer published
// alongside its coefficient commitments. It returns false for a failing
// proof; a second call on the same inputs always returns the same result.
func VerifyProofOfKnowledge(senderIndex ParticipantIndex, commitments []curve.Point, pok *ProofOfKnowledge) bool {
	if len(commitments) == 0 {
		return false
	}
	return verifyPoK(senderIndex, commitments[0], pok)
}

// GenerateShares evaluates the participant's polynomial at every recipient
// index 1..n, producing the Feldman VSS shares f_i(j) to distribute. The
// result is also retained on the Participant for self-addressed lookup
// during AggregateShares.
func (p *Participant) GenerateShares() (map[ParticipantIndex]*big.Int, error) {
	if p.Coefficients == nil {
		return nil, ErrPreconditionNotMet
	}
	shares := make(map[ParticipantIndex]*big.Int, p.Participant)
	for j := 1; j <= p.Participant; j++ {
		x := new(big.Int).SetInt64(int64(j))
		shares[ParticipantIndex(j)] = evaluatePolynomial(p.Coefficients, x)
	}
	p.Shares = shares
	return shares, nil
}

// VerifyShare checks a received Feldman VSS share against the dealer's
// published coefficient commitments: it accepts iff G·share equals the sum
// over k of commitments[k] * (p.Index^k mod Q).
func (p *Participant) VerifyShare(share *big.Int, commitments []curve.Point) bool {
	return verifyFeldmanShare(p.Index, share, commitments)
}

func verifyFeldmanShare(receiver ParticipantIndex, share *big.Int, commitments []curve.Point) bool {
	if share == nil || len(commitments) == 0 {
		return false
	}
	lhs := curve.ScalarBaseMul(share)

	rhs := curve.Infinity
	power := big.NewInt(1)
	x := new(big.Int).SetUint64(uint64(receiver))
	for _, c := range commitments {
		rhs = rhs.Add(c.ScalarMul(power))
		power = new(big.Int).Mul(power, x)
		power.Mod(power, curve.Q())
	}
	return lhs.Equal(rhs)
}

// AggregateShares sums the participant's own self-addressed share with the
// shares received from every other party into the long-term aggregate
// share s_i. If an aggregate share already exists — a refresh round — the
// new sum is added to the existing one rather than replacing it, so a
// refresh polynomial with constant term 0 leaves the reconstructed secret
// unchanged.
func (p *Participant) AggregateShares(received map[ParticipantIndex]*big.Int) error {
	own, ok := p.Shares[p.Index]
	if !ok {
		return ErrPreconditionNotMet
	}

	sum := new(big.Int).Set(own)
	for _, share := range received {
		sum.Add(sum, share)
	}
	sum.Mod(sum, curve.Q())

	refreshing := p.haveAggregateShare
	if refreshing {
		sum.Add(sum, p.AggregateShare)
		sum.Mod(sum, curve.Q())
	}
	p.AggregateShare = sum
	p.haveAggregateShare = true

	if refreshing {
		p.logRoundComplete("refresh share aggregation")
	} else {
		p.logRoundComplete("DKG share aggregation")
	}
	return nil
}

// DerivePublicKey folds in the constant-term commitments C_{j,0} published
// by every other participant, producing Y = sum_j C_{j,0} (self included).
// On a refresh round — where every contributed constant term is 0 — this
// adds the (zero-valued) delta into the existing key rather than
// recomputing it from only this round's commitments, leaving Y unchanged.
func (p *Participant) DerivePublicKey(others map[ParticipantIndex]curve.Point) (curve.Point, error) {
	if len(p.CoefficientCommitments) == 0 {
		return curve.Point{}, ErrPreconditionNotMet
	}

	delta := p.CoefficientCommitments[0]
	for _, c := range others {
		delta = delta.Add(c)
	}

	if p.havePublicKey {
		p.PublicKey = p.PublicKey.Add(delta)
	} else {
		p.PublicKey = delta
		p.havePublicKey = true
	}
	return p.PublicKey, nil
}

// DeriveGroupCommitments folds in the coefficient commitment vectors
// published by every other participant, producing the componentwise sum
// group_commitments[k] = sum_j C_{j,k}. As with DerivePublicKey, a refresh
// round adds this round's (zero-constant-term) vector into the existing
// one rather than replacing it.
func (p *Participant) DeriveGroupCommitments(others map[ParticipantIndex][]curve.Point) ([]curve.Point, error) {
	if len(p.CoefficientCommitments) == 0 {
		return nil, ErrPreconditionNotMet
	}

	delta := make([]curve.Point, len(p.CoefficientCommitments))
	copy(delta, p.CoefficientCommitments)

	for _, commitments := range others {
		if len(commitments) != len(delta) {
			return nil, ErrInvalidArgument
		}
		for k, c := range commitments {
			delta[k] = delta[k].Add(c)
		}
	}

	if p.GroupCommitments == nil {
		p.GroupCommitments = delta
	} else {
		if len(p.GroupCommitments) != len(delta) {
			return nil, ErrInvalidArgument
		}
		for k := range delta {
			p.GroupCommitments[k] = p.GroupCommitments[k].Add(delta[k])
		}
	}
	return p.GroupCommitments, nil
}

// DerivePublicVerificationShare computes G·s_i's expected value from the
// group's published coefficient commitments: sum_k group_commitments[k] *
// (index^k mod Q). Any honest party's aggregate share must satisfy
// G·s_i == this value — the Feldman verification check the data model's
// second invariant requires.
func DerivePublicVerificationShare(groupCommitments []curve.Point, index ParticipantIndex) curve.Point {
	result := curve.Infinity
	power := big.NewInt(1)
	x := new(big.Int).SetUint64(uint64(index))
	for _, c := range groupCommitments {
		result = result.Add(c.ScalarMul(power))
		power = new(big.Int).Mul(power, x)
		power.Mod(power, curve.Q())
	}
	return result
}

// InitRefresh generates a refresh polynomial with constant term 0 and
// threshold-1 uniformly random higher coefficients, replacing the
// participant's working coefficients and publishing fresh commitments. No
// proof of knowledge is produced: the zero constant term commits to the
// point at infinity, and ProofOfKnowledge is cleared. The caller then
// drives the same GenerateShares / AggregateShares / DerivePublicKey /
// DeriveGroupCommitments round as in DKG; because every party's refresh
// polynomial has constant term 0, the joint key is unchanged while every
// aggregate share moves to a fresh point on a re-randomized polynomial.
func (p *Participant) InitRefresh(rand io.Reader) error {
	if !p.haveAggregateShare {
		return ErrPreconditionNotMet
	}

	coefficients, err := generatePolynomial(rand, big.NewInt(0), p.Threshold)
	if err != nil {
		return err
	}
	commitments := commitPolynomial(coefficients)

	// commitments[0] is the point at infinity, which has no SEC1 encoding to
	// hash into a proof-of-knowledge challenge.
	p.Coefficients = coefficients
	p.CoefficientCommitments = commitments
	p.ProofOfKnowledge = nil
	return nil
}

// HasAggregateShare reports whether the participant currently holds a
// long-term aggregate share, i.e. whether signing and repair-dealing
// operations that require one are available.
func (p *Participant) HasAggregateShare() bool {
	return p.haveAggregateShare
}

// EraseAggregateShare discards the participant's aggregate share, as if
// its storage had been lost. It exists to set up repair scenarios; the
// core itself never calls it.
func (p *Participant) EraseAggregateShare() {
	p.AggregateShare = nil
	p.haveAggregateShare = false
}
