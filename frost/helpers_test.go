package frost

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/frostsig/frost/curve"
)

// runDKG drives n participants through a full keygen round (InitKeygen,
// exchange commitments/PoKs, exchange shares, aggregate, derive the joint
// key and group commitments) and returns the resulting participants,
// sharing the same joint public key and group commitment vector.
func runDKG(t *testing.T, n, threshold int) ([]*Participant, curve.Point) {
	t.Helper()

	participants := make([]*Participant, n)
	for i := 0; i < n; i++ {
		p, err := InitKeygen(rand.Reader, ParticipantIndex(i+1), threshold, n)
		if err != nil {
			t.Fatalf("InitKeygen(%d): %v", i+1, err)
		}
		participants[i] = p
	}

	for _, p := range participants {
		for _, other := range participants {
			if other.Index == p.Index {
				continue
			}
			if !VerifyProofOfKnowledge(other.Index, other.CoefficientCommitments, other.ProofOfKnowledge) {
				t.Fatalf("PoK from participant %d failed verification", other.Index)
			}
		}
	}

	allShares := make(map[ParticipantIndex]map[ParticipantIndex]*big.Int, n)
	for _, p := range participants {
		shares, err := p.GenerateShares()
		if err != nil {
			t.Fatalf("GenerateShares(%d): %v", p.Index, err)
		}
		allShares[p.Index] = shares
	}

	for _, p := range participants {
		for _, dealer := range participants {
			share := allShares[dealer.Index][p.Index]
			if !p.VerifyShare(share, dealer.CoefficientCommitments) {
				t.Fatalf("share from dealer %d to %d failed Feldman verification", dealer.Index, p.Index)
			}
		}
	}

	for _, p := range participants {
		received := make(map[ParticipantIndex]*big.Int, n-1)
		for _, dealer := range participants {
			if dealer.Index == p.Index {
				continue
			}
			received[dealer.Index] = allShares[dealer.Index][p.Index]
		}
		if err := p.AggregateShares(received); err != nil {
			t.Fatalf("AggregateShares(%d): %v", p.Index, err)
		}
	}

	var jointKey curve.Point
	for _, p := range participants {
		others := make(map[ParticipantIndex]curve.Point, n-1)
		for _, dealer := range participants {
			if dealer.Index == p.Index {
				continue
			}
			others[dealer.Index] = dealer.CoefficientCommitments[0]
		}
		key, err := p.DerivePublicKey(others)
		if err != nil {
			t.Fatalf("DerivePublicKey(%d): %v", p.Index, err)
		}
		jointKey = key

		otherCommitments := make(map[ParticipantIndex][]curve.Point, n-1)
		for _, dealer := range participants {
			if dealer.Index == p.Index {
				continue
			}
			otherCommitments[dealer.Index] = dealer.CoefficientCommitments
		}
		if _, err := p.DeriveGroupCommitments(otherCommitments); err != nil {
			t.Fatalf("DeriveGroupCommitments(%d): %v", p.Index, err)
		}
	}

	return participants, jointKey
}

// signWithQuorum runs a full FROST signing session for message across the
// participants at signerIndexes (a subset of all), returning the combined
// 64-byte signature.
func signWithQuorum(
	t *testing.T,
	all []*Participant,
	signerIndexes []ParticipantIndex,
	message []byte,
	jointKey curve.Point,
	bip32Tweak, taprootTweak *big.Int,
) []byte {
	t.Helper()

	byIndex := make(map[ParticipantIndex]*Participant, len(all))
	for _, p := range all {
		byIndex[p.Index] = p
	}

	pairs := make(map[ParticipantIndex]NonceCommitmentPair, len(signerIndexes))
	signers := make([]*Participant, 0, len(signerIndexes))
	for _, idx := range signerIndexes {
		p := byIndex[idx]
		pair, err := p.GenerateNoncePair(rand.Reader)
		if err != nil {
			t.Fatalf("GenerateNoncePair(%d): %v", idx, err)
		}
		pairs[idx] = *pair
		signers = append(signers, p)
	}

	agg, err := NewAggregator(jointKey, message, len(all), pairs, signerIndexes, bip32Tweak, taprootTweak)
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}

	shares := make(map[ParticipantIndex]*big.Int, len(signers))
	for _, p := range signers {
		z, err := p.Sign(message, agg, signerIndexes)
		if err != nil {
			t.Fatalf("Sign(%d): %v", p.Index, err)
		}
		shares[p.Index] = z
	}

	sig, err := agg.Combine(shares)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	return sig
}

// verifyBIP340 independently checks a 64-byte (R || z) signature against
// effectiveKey by recomputing the challenge and testing z*G == R + c*Y,
// the BIP-340 verification equation, using the curve package directly
// rather than any frost package helper.
func verifyBIP340(effectiveKey curve.Point, message, sig []byte) bool {
	if len(sig) != 64 {
		return false
	}
	r, err := curve.DecodeXOnly(sig[:32])
	if err != nil {
		return false
	}
	y, err := curve.DecodeXOnly(curve.EncodeXOnly(effectiveKey))
	if err != nil {
		return false
	}
	z := new(big.Int).SetBytes(sig[32:])
	if z.Cmp(curve.Q()) >= 0 {
		return false
	}

	c := curve.HashToScalar("BIP0340/challenge", curve.EncodeXOnly(r), curve.EncodeXOnly(y), message)

	lhs := curve.ScalarBaseMul(z)
	rhs := r.Add(y.ScalarMul(c))
	return lhs.Equal(rhs)
}
