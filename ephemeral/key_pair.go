// Package ephemeral provides short-lived Diffie-Hellman key pairs and the
// symmetric encryption derived from them, for securely routing a single
// repair share between two participants over an otherwise untrusted
// channel. Nothing in this package is part of the core FROST state
// machine; an embedder wires it in at the transport boundary when it wants
// confidentiality for repair-share routing.
package ephemeral

import (
	"github.com/btcsuite/btcd/btcec"
)

// PrivateKey is an ephemeral elliptic curve private key used for one
// Diffie-Hellman exchange and then discarded.
type PrivateKey btcec.PrivateKey

// PublicKey is the public half of a PrivateKey.
type PublicKey btcec.PublicKey

// KeyPair is a freshly generated ephemeral Diffie-Hellman key pair.
type KeyPair struct {
	PrivateKey *PrivateKey
	PublicKey  *PublicKey
}

// GenerateKeyPair creates a new ephemeral key pair using a cryptographic
// random source.
func GenerateKeyPair() (*KeyPair, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		PrivateKey: (*PrivateKey)(key),
		PublicKey:  (*PublicKey)(key.PubKey()),
	}, nil
}
