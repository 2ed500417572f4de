package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// directMessageVersion is the framing version byte prepended to every
// sealed blinded direct message. Only version 0 exists.
const directMessageVersion byte = 0x00

// SealDirectMessage encrypts message for a blinded inbox. The plaintext is
// message ‖ senderEdPub so the recipient learns who is behind the sender's
// blinded ID, and the wire framing is
//
//	0x00 ‖ ciphertext ‖ nonce(24)
//
// which must be reproduced bit-exactly for interoperability.
func SealDirectMessage(message []byte, senderEdPub []byte, key []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("dm cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("dm nonce: %w", err)
	}

	plaintext := make([]byte, 0, len(message)+len(senderEdPub))
	plaintext = append(plaintext, message...)
	plaintext = append(plaintext, senderEdPub...)

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, 1+len(ciphertext)+len(nonce))
	out = append(out, directMessageVersion)
	out = append(out, ciphertext...)
	out = append(out, nonce...)
	return out, nil
}

// OpenDirectMessage reverses SealDirectMessage. It returns the inner
// message and the sender's Ed25519 master public key recovered from the
// plaintext tail.
func OpenDirectMessage(data []byte, key []byte) (message, senderEdPub []byte, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("dm cipher: %w", err)
	}

	if len(data) < 1+aead.Overhead()+chacha20poly1305.NonceSizeX {
		return nil, nil, fmt.Errorf("%w: sealed direct message too short", ErrDecryptionFailed)
	}
	if data[0] != directMessageVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version byte %#x", ErrDecryptionFailed, data[0])
	}

	nonce := data[len(data)-chacha20poly1305.NonceSizeX:]
	ciphertext := data[1 : len(data)-chacha20poly1305.NonceSizeX]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if len(plaintext) < 32 {
		return nil, nil, fmt.Errorf("%w: plaintext shorter than embedded sender key", ErrDecryptionFailed)
	}

	return plaintext[:len(plaintext)-32], plaintext[len(plaintext)-32:], nil
}
