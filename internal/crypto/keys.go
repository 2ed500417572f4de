// SPDX-License-Identifier: Apache-2.0

// Package crypto wraps the primitives the SOGS protocol is built from:
// Ed25519 signing, per-server key blinding, BLAKE2b hashing and the
// authenticated encryption used for blinded direct messages. Everything in
// this package is a pure function of its inputs; no network or storage.
package crypto

import (
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
)

// KeyPair is the user's master Ed25519 identity keypair, held seed-based so
// the private scalar and the prefix half of the SHA-512 expansion can be
// recomputed for the blinded signature scheme.
type KeyPair struct {
	seed      []byte
	PublicKey ed25519.PublicKey
}

// KeyPairFromSeed builds a KeyPair from a 32-byte Ed25519 seed.
func KeyPairFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return KeyPair{}, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrInvalidKey, ed25519.SeedSize, len(seed))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	kp := KeyPair{
		seed:      append([]byte(nil), seed...),
		PublicKey: priv.Public().(ed25519.PublicKey),
	}
	return kp, nil
}

// KeyPairFromSeedHex builds a KeyPair from a hex-encoded 32-byte seed.
func KeyPairFromSeedHex(seedHex string) (KeyPair, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: seed is not hex: %v", ErrInvalidKey, err)
	}
	return KeyPairFromSeed(seed)
}

// Sign produces a standard Ed25519 signature over message with the master
// key. This is the unblinded signing scheme.
func (k KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.NewKeyFromSeed(k.seed), message)
}

// privateScalar returns the clamped private scalar a derived from the seed,
// i.e. the integer such that PublicKey = a·B.
func (k KeyPair) privateScalar() *edwards25519.Scalar {
	h := sha512.Sum512(k.seed)
	// SetBytesWithClamping cannot fail on a 32-byte input.
	a, _ := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	return a
}

// hashPrefix returns the second half of the SHA-512 seed expansion, used as
// the deterministic-nonce input of the blinded signature.
func (k KeyPair) hashPrefix() []byte {
	h := sha512.Sum512(k.seed)
	return h[32:]
}

// StandardID returns the user's standard session ID: the X25519 form of the
// master public key, hex-encoded with the standard prefix.
func (k KeyPair) StandardID() (SessionID, error) {
	xpub, err := montgomeryFromEd(k.PublicKey)
	if err != nil {
		return SessionID{}, err
	}
	return SessionID{Prefix: PrefixStandard, PublicKey: xpub}, nil
}

// UnblindedID returns the user's unblinded session ID: the raw Ed25519
// master public key with the unblinded prefix.
func (k KeyPair) UnblindedID() SessionID {
	return SessionID{Prefix: PrefixUnblinded, PublicKey: append([]byte(nil), k.PublicKey...)}
}
