package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// KeyPair is an ed25519 signing key, modeled after the teacher's
// in-memory signer: a thin wrapper that never touches disk or HSMs,
// suitable for tests and the work the external wallet collaborator would
// otherwise do.
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// GenerateKeyPair creates a new random ed25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ed25519 key: %w", err)
	}
	return &KeyPair{Public: pub, Private: priv}, nil
}

// Sign signs hash (a block's canonical hash) and returns a 64-byte
// signature.
func (k *KeyPair) Sign(hash []byte) []byte {
	return ed25519.Sign(k.Private, hash)
}

// Verify checks that sig is a valid ed25519 signature over hash by the
// account holding pubKey. Spec.md §4.2: "verify(account, hash, signature)
// is ed25519 verification of the signature over the block hash using the
// account public key."
func Verify(pubKey, hash, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pubKey, hash, sig)
}
