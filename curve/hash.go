package curve

import (
	"crypto/sha256"
	"math/big"
)

// TaggedHash implements the tagged hash construction from [BIP-340]:
//
//	hash_tag(x) = SHA256(SHA256(tag) || SHA256(tag) || x)
//
// where tag is the UTF-8 encoding of a domain-separation string.
func TaggedHash(tag string, messages ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, m := range messages {
		h.Write(m)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashToScalar computes TaggedHash(tag, messages...) and reduces the result
// modulo the group order Q. As [BIP-340] notes, reducing a uniformly random
// 256-bit integer modulo a curve order this close to 2^256 introduces no
// observable bias for secp256k1.
func HashToScalar(tag string, messages ...[]byte) *big.Int {
	h := TaggedHash(tag, messages...)
	s := new(big.Int).SetBytes(h[:])
	return s.Mod(s, curve.N)
}

// OS2IP converts a byte slice to a nonnegative integer, as specified in
// [RFC-8017] section 4.2.
func OS2IP(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// I2OSP converts a nonnegative integer to a fixed-length big-endian byte
// slice of the given length, as specified in [RFC-8017] section 4.1.
func I2OSP(x *big.Int, length int) []byte {
	out := make([]byte, length)
	x.FillBytes(out)
	return out
}
