package frost

import (
	"io"
	"math/big"
	"sort"

	"github.com/frostsig/frost/curve"
	"github.com/frostsig/frost/ephemeral"
)

// RepairDealing is one helper's contribution to repairing another
// participant's lost share: an additive (t,t) re-sharing of the helper's
// Lagrange-weighted contribution to reconstructing the missing share,
// routed one component per committee member.
type RepairDealing struct {
	Dealer      ParticipantIndex
	Committee   []ParticipantIndex // sorted ascending
	Shares      []*big.Int         // Shares[k] routes to Committee[k]
	Commitments []curve.Point
}

// sortParticipants returns a sorted copy of indexes.
func sortParticipants(indexes []ParticipantIndex) []ParticipantIndex {
	sorted := make([]ParticipantIndex, len(indexes))
	copy(sorted, indexes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

// GenerateRepairShares is called by a helper participant h, a member of the
// repair committee, to produce its contribution to reconstructing the
// missing share of targetIndex. It computes lambda, h's Lagrange
// coefficient at x=targetIndex over the committee, draws t-1 uniformly
// random values, and sets the t-th so that the t shares sum to
// lambda*s_h. Each share commitment is published so other committee
// members can verify the dealing without learning s_h.
func (p *Participant) GenerateRepairShares(
	rand io.Reader,
	committee []ParticipantIndex,
	targetIndex ParticipantIndex,
) (*RepairDealing, error) {
	if !p.haveAggregateShare {
		return nil, ErrPreconditionNotMet
	}

	sorted := sortParticipants(committee)
	t := len(sorted)
	if t == 0 {
		return nil, ErrInvalidArgument
	}

	x := new(big.Int).SetUint64(uint64(targetIndex))
	lambda, err := lagrangeCoefficient(x, sorted, p.Index)
	if err != nil {
		return nil, err
	}

	weighted := new(big.Int).Mul(lambda, p.AggregateShare)
	weighted.Mod(weighted, curve.Q())

	shares := make([]*big.Int, t)
	sum := big.NewInt(0)
	for k := 0; k < t-1; k++ {
		r, err := curve.RandomScalar(rand)
		if err != nil {
			return nil, err
		}
		shares[k] = r
		sum.Add(sum, r)
	}
	last := new(big.Int).Sub(weighted, sum)
	last.Mod(last, curve.Q())
	shares[t-1] = last

	commitments := make([]curve.Point, t)
	for k, r := range shares {
		commitments[k] = curve.ScalarBaseMul(r)
	}

	p.RepairShares = shares
	p.RepairShareCommitments = commitments
	p.RepairParticipants = sorted

	return &RepairDealing{
		Dealer:      p.Index,
		Committee:   sorted,
		Shares:      shares,
		Commitments: commitments,
	}, nil
}

// RouteRepairShares maps a dealing's per-position shares onto the
// committee members they are addressed to, for a transport layer to
// deliver. It is provided as a convenience; this package performs no
// routing of its own.
func (d *RepairDealing) RouteRepairShares() map[ParticipantIndex]*big.Int {
	routed := make(map[ParticipantIndex]*big.Int, len(d.Committee))
	for k, recipient := range d.Committee {
		routed[recipient] = d.Shares[k]
	}
	return routed
}

// EncryptRepairShares routes this dealing's per-recipient shares as
// RouteRepairShares does, then seals each one under a one-time symmetric key
// derived by ECDH between the dealer's ephemeral key pair and the
// recipient's published ephemeral public key, so a repair share never
// crosses the transport in the clear. recipientKeys must hold an entry for
// every committee member in d.Committee.
func (d *RepairDealing) EncryptRepairShares(
	dealerKey *ephemeral.PrivateKey,
	recipientKeys map[ParticipantIndex]*ephemeral.PublicKey,
) (map[ParticipantIndex][]byte, error) {
	routed := d.RouteRepairShares()
	out := make(map[ParticipantIndex][]byte, len(routed))
	for recipient, share := range routed {
		recipientKey, ok := recipientKeys[recipient]
		if !ok {
			return nil, ErrInvalidArgument
		}
		ciphertext, err := dealerKey.Ecdh(recipientKey).Encrypt(curve.I2OSP(share, 32))
		if err != nil {
			return nil, err
		}
		out[recipient] = ciphertext
	}
	return out, nil
}

// DecryptRepairShare opens a single repair-share ciphertext produced by
// EncryptRepairShares, recovering the scalar a dealer addressed to
// recipientKey's owner. dealerKey is the dealer's published ephemeral
// public key; ECDH is symmetric, so the recipient recovers the same shared
// key the dealer sealed the share under without either side learning the
// other's private scalar.
func DecryptRepairShare(ciphertext []byte, recipientKey *ephemeral.PrivateKey, dealerKey *ephemeral.PublicKey) (*big.Int, error) {
	plaintext, err := recipientKey.Ecdh(dealerKey).Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	return curve.OS2IP(plaintext), nil
}

// VerifyRepairShare checks a single dealer's repair dealing: the sum of
// its published commitments must equal its public verification share,
// scaled by lambda, the Lagrange coefficient used to produce the dealing.
func VerifyRepairShare(dealerVerificationShare curve.Point, lambda *big.Int, commitments []curve.Point) bool {
	expected := dealerVerificationShare.ScalarMul(lambda)
	actual := curve.Infinity
	for _, c := range commitments {
		actual = actual.Add(c)
	}
	return expected.Equal(actual)
}

// AggregateRepairShare sums the per-dealer shares this committee member
// received (one component from each helper in the committee, including
// itself) into the participant's AggregateRepairShare, which it then
// forwards to the participant being repaired.
func (p *Participant) AggregateRepairShare(fromDealers map[ParticipantIndex]*big.Int) error {
	sum := big.NewInt(0)
	for _, share := range fromDealers {
		sum.Add(sum, share)
	}
	sum.Mod(sum, curve.Q())
	p.AggregateRepairShare = sum
	return nil
}

// VerifyAggregateRepairShare checks a committee member's aggregate repair
// share against the sum of the per-dealer commitments addressed to it.
func VerifyAggregateRepairShare(aggregateShare *big.Int, dealerCommitments [][]curve.Point, position int) bool {
	expected := curve.ScalarBaseMul(aggregateShare)
	actual := curve.Infinity
	for _, commitments := range dealerCommitments {
		if position >= len(commitments) {
			return false
		}
		actual = actual.Add(commitments[position])
	}
	return expected.Equal(actual)
}

// FinalizeRepair reconstructs this participant's lost aggregate share from
// the t aggregate_repair_shares published by the repair committee. It
// fails with ErrAlreadyHeld if the participant already holds an aggregate
// share — repair only ever fills an absent share, it never overwrites one.
func (p *Participant) FinalizeRepair(committeeShares map[ParticipantIndex]*big.Int) error {
	if p.haveAggregateShare {
		return ErrAlreadyHeld
	}

	sum := big.NewInt(0)
	for _, share := range committeeShares {
		sum.Add(sum, share)
	}
	sum.Mod(sum, curve.Q())

	p.AggregateShare = sum
	p.haveAggregateShare = true
	p.logRoundComplete("repair")
	return nil
}
