package frost

import (
	"math/big"

	"github.com/frostsig/frost/curve"
)

// lagrangeCoefficient computes lambda(x; S, i) = product over j in S, j!=i
// of (x-j)/(i-j), evaluated mod Q. S must be pairwise distinct; callers
// that have not already deduplicated their index set will get
// ErrDuplicateIndex rather than a silently wrong coefficient.
func lagrangeCoefficient(x *big.Int, set []ParticipantIndex, i ParticipantIndex) (*big.Int, error) {
	if err := requireDistinct(set); err != nil {
		return nil, err
	}

	num := big.NewInt(1)
	den := big.NewInt(1)
	ii := new(big.Int).SetUint64(uint64(i))

	for _, j := range set {
		if j == i {
			continue
		}
		jj := new(big.Int).SetUint64(uint64(j))

		numTerm := new(big.Int).Sub(x, jj)
		num.Mul(num, numTerm)
		num.Mod(num, curve.Q())

		denTerm := new(big.Int).Sub(ii, jj)
		den.Mul(den, denTerm)
		den.Mod(den, curve.Q())
	}

	denInv, err := curve.ModInverse(den)
	if err != nil {
		return nil, err
	}

	result := new(big.Int).Mul(num, denInv)
	return result.Mod(result, curve.Q()), nil
}

// lagrangeCoefficientAtZero is the common case used to reconstruct a secret
// (or verify a signature share's contribution) from its value at x=0.
func lagrangeCoefficientAtZero(set []ParticipantIndex, i ParticipantIndex) (*big.Int, error) {
	return lagrangeCoefficient(big.NewInt(0), set, i)
}

func requireDistinct(set []ParticipantIndex) error {
	seen := make(map[ParticipantIndex]bool, len(set))
	for _, idx := range set {
		if idx == 0 {
			return ErrIndexOutOfRange
		}
		if seen[idx] {
			return ErrDuplicateIndex
		}
		seen[idx] = true
	}
	return nil
}
