package curve

import (
	"math/big"
	"testing"

	"github.com/frostsig/frost/internal/testutils"
)

func TestScalarBaseMul(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(10))

	expectedX := "72488970228380509287422715226575535698893157273063074627791787432852706183111"
	expectedY := "62070622898698443831883535403436258712770888294397026493185421712108624767191"

	testutils.AssertStringsEqual(t, "X coordinate", expectedX, point.X().String())
	testutils.AssertStringsEqual(t, "Y coordinate", expectedY, point.Y().String())
}

func TestScalarMul(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(10))
	result := point.ScalarMul(big.NewInt(5))

	expectedX := "18752372355191540835222161239240920883340654532661984440989362140194381601434"
	expectedY := "88478450163343634110113046083156231725329016889379853417393465962619872936244"

	testutils.AssertStringsEqual(t, "X coordinate", expectedX, result.X().String())
	testutils.AssertStringsEqual(t, "Y coordinate", expectedY, result.Y().String())
}

func TestAdd(t *testing.T) {
	p1 := ScalarBaseMul(big.NewInt(10))
	p2 := ScalarBaseMul(big.NewInt(20))
	result := p1.Add(p2)

	expectedX := "49378132684229722274313556995573891527709373183446262831552359577455015004672"
	expectedY := "78123232289538034746933569305416412888858560602643272431489024958214987548923"

	testutils.AssertStringsEqual(t, "X coordinate", expectedX, result.X().String())
	testutils.AssertStringsEqual(t, "Y coordinate", expectedY, result.Y().String())
}

func TestSub(t *testing.T) {
	p1 := ScalarBaseMul(big.NewInt(30))
	p2 := ScalarBaseMul(big.NewInt(5))
	result := p1.Sub(p2)

	expectedX := "66165162229742397718677620062386824252848999675912518712054484685772795754260"
	expectedY := "52018513869565587577673992057861898728543589604141463438466108080111932355586"

	testutils.AssertStringsEqual(t, "X coordinate", expectedX, result.X().String())
	testutils.AssertStringsEqual(t, "Y coordinate", expectedY, result.Y().String())
}

func TestAddIdentity(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(10))

	result1 := point.Add(Infinity)
	result2 := Infinity.Add(point)

	if !result1.Equal(point) {
		t.Errorf("expected point + infinity == point")
	}
	if !result2.Equal(point) {
		t.Errorf("expected infinity + point == point")
	}
}

func TestScalarMulZeroIsInfinity(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(10))
	result := point.ScalarMul(Q())

	if !result.IsInfinity() {
		t.Errorf("expected k*P == infinity when k == 0 mod Q")
	}
}

func TestNegateIsInverse(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(42))
	sum := point.Add(point.Negate())

	if !sum.IsInfinity() {
		t.Errorf("expected P + (-P) == infinity")
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(1337))

	encoded := EncodeCompressed(point)
	testutils.AssertIntsEqual(t, "compressed length", 33, len(encoded))

	decoded, err := DecodeCompressed(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(point) {
		t.Errorf("round trip through compressed encoding changed the point")
	}
}

func TestDecodeCompressedInvalid(t *testing.T) {
	tests := map[string]struct {
		input []byte
	}{
		"nil":            {input: nil},
		"empty":          {input: []byte{}},
		"wrong length":   {input: make([]byte, 32)},
		"wrong prefix":   {input: append([]byte{0x04}, make([]byte, 32)...)},
		"non-residue x":  {input: append([]byte{0x02}, make([]byte, 32)...)},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeCompressed(test.input); err != ErrInvalidEncoding {
				t.Errorf("expected ErrInvalidEncoding, got %v", err)
			}
		})
	}
}

func TestNormalizePicksSmallerYRegardlessOfSign(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(99))
	negated := point.Negate()

	if !point.Normalize().Equal(negated.Normalize()) {
		t.Errorf("expected a point and its negation to normalize to the same representative")
	}

	norm := point.Normalize()
	other := new(big.Int).Sub(P(), norm.Y())
	if norm.Y().Cmp(other) > 0 {
		t.Errorf("expected Normalize to pick the smaller-Y representative")
	}
}

func TestNormalizeIsIdentityOnInfinity(t *testing.T) {
	if !Infinity.Normalize().IsInfinity() {
		t.Errorf("expected Normalize(infinity) == infinity")
	}
}

func TestXOnlyRoundTripPicksEvenY(t *testing.T) {
	point := ScalarBaseMul(big.NewInt(1337))
	if point.HasEvenY() {
		point = point.Negate()
	}

	encoded := EncodeXOnly(point)
	testutils.AssertIntsEqual(t, "x-only length", 32, len(encoded))

	decoded, err := DecodeXOnly(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.HasEvenY() {
		t.Errorf("expected decoded point to have even Y")
	}
	if decoded.X().Cmp(point.X()) != 0 {
		t.Errorf("expected decoded X to match original X")
	}
}
