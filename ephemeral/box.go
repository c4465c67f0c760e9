package ephemeral

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// box is a symmetric authenticated-encryption primitive keyed by a 32-byte
// secret (the output of an ECDH exchange, hashed down to a key in
// PrivateKey.Ecdh). Every call to encrypt draws a fresh random nonce,
// so encrypting the same plaintext twice under the same key yields two
// different ciphertexts.
type box struct {
	key [32]byte
}

// newBox builds a box from a 32-byte key, such as a SHA-256 digest of a
// Diffie-Hellman shared secret.
func newBox(key [32]byte) *box {
	return &box{key: key}
}

// encrypt seals plaintext under b's key with a freshly drawn 24-byte nonce,
// prepended to the returned ciphertext.
func (b *box) encrypt(plaintext []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}

	sealed := secretbox.Seal(nonce[:], plaintext, &nonce, &b.key)
	return sealed, nil
}

// decrypt opens a ciphertext produced by encrypt. It returns an error if
// the ciphertext is too short to contain a nonce, or if authentication
// fails.
func (b *box) decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 24 {
		return nil, errors.New("symmetric key decryption failed")
	}

	var nonce [24]byte
	copy(nonce[:], ciphertext[:24])

	plaintext, ok := secretbox.Open(nil, ciphertext[24:], &nonce, &b.key)
	if !ok {
		return nil, errors.New("symmetric key decryption failed")
	}
	return plaintext, nil
}
