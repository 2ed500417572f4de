// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"
)

// BlindedKeyPair is the per-server keypair k·a / k·a·B derived from the
// master identity and a server's public key. The server only ever sees the
// public half, so a user cannot be correlated across servers.
type BlindedKeyPair struct {
	// Secret is the blinded private scalar ka (32 bytes, little-endian).
	Secret *edwards25519.Scalar
	// PublicKey is the compressed blinded public point kA.
	PublicKey []byte
}

// blindingFactor computes k = reduce(BLAKE2b-64(serverPubKey)) mod L.
func blindingFactor(serverPubKey []byte) (*edwards25519.Scalar, error) {
	h, err := blake2b.New(64, nil)
	if err != nil {
		return nil, err
	}
	h.Write(serverPubKey)

	return edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
}

// DeriveBlindedKeyPair derives the blinded keypair for the server with the
// given hex-encoded public key.
func DeriveBlindedKeyPair(serverPubKeyHex string, kp KeyPair) (BlindedKeyPair, error) {
	serverPubKey, err := hex.DecodeString(serverPubKeyHex)
	if err != nil || len(serverPubKey) != 32 {
		return BlindedKeyPair{}, fmt.Errorf("%w: server public key must be 32 hex-encoded bytes", ErrInvalidServerKey)
	}

	k, err := blindingFactor(serverPubKey)
	if err != nil {
		return BlindedKeyPair{}, fmt.Errorf("blinding factor: %w", err)
	}

	ka := edwards25519.NewScalar().Multiply(k, kp.privateScalar())
	kA := new(edwards25519.Point).ScalarBaseMult(ka)

	return BlindedKeyPair{Secret: ka, PublicKey: kA.Bytes()}, nil
}

// BlindedID returns the blinded session ID for this keypair.
func (b BlindedKeyPair) BlindedID() SessionID {
	return SessionID{Prefix: PrefixBlinded, PublicKey: append([]byte(nil), b.PublicKey...)}
}

// BlindedSignature signs message with the blinded key in a way that proves
// possession of the master key behind the published blinded public key
// without putting the master key in the transcript:
//
//	H_rh = SHA-512(seed)[32:64]
//	r    = reduce(SHA-512(H_rh ‖ kA ‖ message))
//	R    = r·B
//	HRAM = reduce(SHA-512(R ‖ kA ‖ message))
//	sig  = R ‖ (r + HRAM·ka)
//
// The result verifies as a standard Ed25519 signature under kA.
func BlindedSignature(message []byte, kp KeyPair, blinded BlindedKeyPair) ([]byte, error) {
	if blinded.Secret == nil || len(blinded.PublicKey) != 32 {
		return nil, fmt.Errorf("%w: blinded keypair is incomplete", ErrInvalidKey)
	}

	rh := sha512.New()
	rh.Write(kp.hashPrefix())
	rh.Write(blinded.PublicKey)
	rh.Write(message)
	r, err := edwards25519.NewScalar().SetUniformBytes(rh.Sum(nil))
	if err != nil {
		return nil, err
	}

	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	ch := sha512.New()
	ch.Write(R)
	ch.Write(blinded.PublicKey)
	ch.Write(message)
	hram, err := edwards25519.NewScalar().SetUniformBytes(ch.Sum(nil))
	if err != nil {
		return nil, err
	}

	s := edwards25519.NewScalar().MultiplyAdd(hram, blinded.Secret, r)

	sig := make([]byte, 0, 64)
	sig = append(sig, R...)
	sig = append(sig, s.Bytes()...)
	return sig, nil
}

// SharedBlindedEncryptionKey derives the symmetric key both ends of a
// blinded direct message arrive at independently:
//
//	combined = a·otherBlindedPub   (a = local master private scalar)
//	key      = BLAKE2b-32(combined ‖ fromBlindedPub ‖ toBlindedPub)
//
// fromBlindedPub is always the sender's blinded key and toBlindedPub the
// recipient's, regardless of which side is deriving.
func SharedBlindedEncryptionKey(kp KeyPair, otherBlindedPub, fromBlindedPub, toBlindedPub []byte) ([]byte, error) {
	other, err := new(edwards25519.Point).SetBytes(otherBlindedPub)
	if err != nil {
		return nil, fmt.Errorf("%w: other blinded key is not a valid point", ErrInvalidKey)
	}

	combined := new(edwards25519.Point).ScalarMult(kp.privateScalar(), other)

	h, err := blake2b.New(32, nil)
	if err != nil {
		return nil, err
	}
	h.Write(combined.Bytes())
	h.Write(fromBlindedPub)
	h.Write(toBlindedPub)
	return h.Sum(nil), nil
}

// GenericHash is BLAKE2b with a caller-chosen output length, the hash the
// SOGS wire protocol uses for request-body digests and key derivation.
func GenericHash(outputLength int, data []byte) ([]byte, error) {
	h, err := blake2b.New(outputLength, nil)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}
