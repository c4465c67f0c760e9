package frost

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/frostsig/frost/curve"
)

func TestSignAndVerifyAcrossQuorums(t *testing.T) {
	participants, jointKey := runDKG(t, 5, 3)
	message := []byte("taxes are due on the thirteenth moon")

	quorums := [][]ParticipantIndex{
		{1, 2, 3},
		{2, 4, 5},
		{1, 3, 5},
	}

	for _, quorum := range quorums {
		sig := signWithQuorum(t, participants, quorum, message, jointKey, nil, nil)
		if len(sig) != 64 {
			t.Fatalf("expected a 64-byte signature, got %d bytes", len(sig))
		}
		if !verifyBIP340(jointKey, message, sig) {
			t.Fatalf("signature from quorum %v failed independent BIP-340 verification", quorum)
		}
	}
}

func TestSignatureDoesNotVerifyUnderWrongMessage(t *testing.T) {
	participants, jointKey := runDKG(t, 3, 2)
	sig := signWithQuorum(t, participants, []ParticipantIndex{1, 2}, []byte("original"), jointKey, nil, nil)

	if verifyBIP340(jointKey, []byte("tampered"), sig) {
		t.Fatal("signature unexpectedly verified under a different message")
	}
}

func TestSignWithTweakVerifiesAgainstTweakedKey(t *testing.T) {
	participants, jointKey := runDKG(t, 3, 2)
	message := []byte("the ledger closes at midnight")

	bip32Tweak := big.NewInt(0xC0FFEE)
	taprootTweak := big.NewInt(0xFEED)

	sig := signWithQuorum(t, participants, []ParticipantIndex{1, 3}, message, jointKey, bip32Tweak, taprootTweak)

	tweakedKey, _, _, err := Tweak(jointKey, bip32Tweak, taprootTweak)
	if err != nil {
		t.Fatal(err)
	}

	if !verifyBIP340(tweakedKey, message, sig) {
		t.Fatal("tweaked signature failed to verify against the tweaked key")
	}
	if verifyBIP340(jointKey, message, sig) {
		t.Fatal("tweaked signature unexpectedly verified against the untweaked key")
	}
}

func TestSignRequiresNonceAndAggregateShare(t *testing.T) {
	participants, jointKey := runDKG(t, 3, 2)
	p := participants[0]
	message := []byte("m")

	pair, err := p.GenerateNoncePair(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	pairs := map[ParticipantIndex]NonceCommitmentPair{1: *pair}
	agg, err := NewAggregator(jointKey, message, 3, pairs, []ParticipantIndex{1}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	p.NoncePair = nil
	if _, err := p.Sign(message, agg, []ParticipantIndex{1}); err != ErrPreconditionNotMet {
		t.Fatalf("expected ErrPreconditionNotMet without a nonce pair, got %v", err)
	}

	if _, err := p.GenerateNoncePair(rand.Reader); err != nil {
		t.Fatal(err)
	}
	p.EraseAggregateShare()
	if _, err := p.Sign(message, agg, []ParticipantIndex{1}); err != ErrPreconditionNotMet {
		t.Fatalf("expected ErrPreconditionNotMet without an aggregate share, got %v", err)
	}
}

func TestNewAggregatorRejectsMismatchedTweakPair(t *testing.T) {
	_, jointKey := runDKG(t, 3, 2)
	pairs := map[ParticipantIndex]NonceCommitmentPair{
		1: {D: curve.ScalarBaseMul(big.NewInt(1)), E: curve.ScalarBaseMul(big.NewInt(2))},
	}
	_, err := NewAggregator(jointKey, []byte("m"), 3, pairs, []ParticipantIndex{1}, big.NewInt(1), nil)
	if err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for a one-sided tweak, got %v", err)
	}
}

func TestNewAggregatorRejectsDuplicateIndexes(t *testing.T) {
	_, jointKey := runDKG(t, 3, 2)
	pair := NonceCommitmentPair{D: curve.ScalarBaseMul(big.NewInt(1)), E: curve.ScalarBaseMul(big.NewInt(2))}
	pairs := map[ParticipantIndex]NonceCommitmentPair{1: pair}
	_, err := NewAggregator(jointKey, []byte("m"), 3, pairs, []ParticipantIndex{1, 1}, nil, nil)
	if err != ErrDuplicateIndex {
		t.Fatalf("expected ErrDuplicateIndex, got %v", err)
	}
}

func TestBindingValueDiffersPerSigner(t *testing.T) {
	_, jointKey := runDKG(t, 3, 2)
	_ = jointKey

	pairs := map[ParticipantIndex]NonceCommitmentPair{
		1: {D: curve.ScalarBaseMul(big.NewInt(11)), E: curve.ScalarBaseMul(big.NewInt(12))},
		2: {D: curve.ScalarBaseMul(big.NewInt(21)), E: curve.ScalarBaseMul(big.NewInt(22))},
	}
	indexes := []ParticipantIndex{1, 2}
	message := []byte("binding value uniqueness")

	rho1, err := BindingValue(1, 3, message, pairs, indexes)
	if err != nil {
		t.Fatal(err)
	}
	rho2, err := BindingValue(2, 3, message, pairs, indexes)
	if err != nil {
		t.Fatal(err)
	}

	if rho1.Cmp(rho2) == 0 {
		t.Fatal("binding values for distinct signers must not collide")
	}

	rho1Again, err := BindingValue(1, 3, message, pairs, indexes)
	if err != nil {
		t.Fatal(err)
	}
	if rho1.Cmp(rho1Again) != 0 {
		t.Fatal("binding value must be deterministic given the same inputs")
	}
}
