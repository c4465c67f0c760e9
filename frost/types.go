// Package frost implements the FROST threshold Schnorr signature protocol
// specialized to the secp256k1/BIP-340 ciphersuite: distributed key
// generation over Feldman verifiable secret sharing, nonce-bound signing
// share computation, signature aggregation, BIP-32/Taproot key tweaking,
// and the share-lifecycle operations (refresh, repair, threshold change).
//
// References: [FROST] draft-irtf-cfrg-frost, [BIP-340], [RFC-8017].
package frost

import (
	"math/big"

	"github.com/frostsig/frost/curve"
)

// ParticipantIndex identifies a party in a threshold group. Valid indexes
// run from 1 to the group size; the value 0 never identifies a party. The
// proof-of-knowledge and binding-value hash inputs encode an index as a
// single byte, which caps group size at 255.
type ParticipantIndex uint16

// NoncePair is the secret nonce pair (d, e) a participant draws before
// signing. Each pair must be used for exactly one signing session.
type NoncePair struct {
	D *big.Int
	E *big.Int
}

// NonceCommitmentPair is the public commitment (D, E) = (G·d, G·e)
// published for a signing session.
type NonceCommitmentPair struct {
	D, E curve.Point
}

// ProofOfKnowledge is the Schnorr proof of knowledge (R_i, mu_i) a
// participant publishes during DKG to certify it knows the discrete log of
// its coefficient-0 commitment.
type ProofOfKnowledge struct {
	R  curve.Point
	Mu *big.Int
}
