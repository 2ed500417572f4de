package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"
)

// legacyKeySalt is the fixed HMAC salt of the deprecated V2 auth-token
// challenge encryption. Wire constant; do not change.
var legacyKeySalt = []byte("LOKI")

// legacyIVSize is the AES-GCM nonce length prepended to legacy ciphertexts.
const legacyIVSize = 12

// x25519PrivateKey converts the master Ed25519 seed into the matching
// X25519 private scalar, so the legacy ECDH runs against the standard
// (05-prefixed) form of the identity.
func (k KeyPair) x25519PrivateKey() []byte {
	h := sha512.Sum512(k.seed)
	out := make([]byte, 32)
	copy(out, h[:32])
	out[0] &= 248
	out[31] &= 127
	out[31] |= 64
	return out
}

// LegacySharedKey derives the AES-256-GCM key of the deprecated auth-token
// challenge: X25519(master, ephemeral) fed through HMAC-SHA256 with the
// fixed salt.
func LegacySharedKey(kp KeyPair, ephemeralPub []byte) ([]byte, error) {
	shared, err := curve25519.X25519(kp.x25519PrivateKey(), ephemeralPub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	mac := hmac.New(sha256.New, legacyKeySalt)
	mac.Write(shared)
	return mac.Sum(nil), nil
}

// LegacyDecrypt opens an iv-prefixed AES-GCM ciphertext produced by a V2
// server: data = iv(12) ‖ ciphertext-with-tag.
func LegacyDecrypt(data, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("legacy cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("legacy gcm: %w", err)
	}

	if len(data) < legacyIVSize+gcm.Overhead() {
		return nil, fmt.Errorf("%w: legacy ciphertext too short", ErrDecryptionFailed)
	}

	plaintext, err := gcm.Open(nil, data[:legacyIVSize], data[legacyIVSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// montgomeryFromEd converts a compressed Edwards point to its Montgomery
// u-coordinate. Used to express Ed25519 keys in X25519 form.
func montgomeryFromEd(edPub []byte) ([]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(edPub)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid edwards point", ErrInvalidKey)
	}
	return p.BytesMontgomery(), nil
}
