// SPDX-License-Identifier: Apache-2.0

// Package signer produces the X-SOGS-* authentication headers for outbound
// requests. It owns the canonical bytes-to-sign construction and selects
// the blinded or unblinded scheme from the server's negotiated
// capabilities. A request that cannot be signed is never sent: every
// failure here happens before any network attempt.
package signer

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sessionlab/go-sogs/internal/capability"
	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/models"
)

// Wire header names. Exact spelling is part of the protocol.
const (
	HeaderPubkey    = "X-SOGS-Pubkey"
	HeaderTimestamp = "X-SOGS-Timestamp"
	HeaderNonce     = "X-SOGS-Nonce"
	HeaderSignature = "X-SOGS-Signature"
)

const nonceSize = 16

// Signer builds authentication headers for requests to SOGS servers.
type Signer struct {
	keys    *crypto.KeyPair
	caps    *capability.Store
	now     func() time.Time
	nonceFn func() ([]byte, error)
}

// New constructs a Signer. keys may be nil for an identity-less client, in
// which case every signing attempt fails closed with ErrSigningFailed.
func New(keys *crypto.KeyPair, caps *capability.Store) *Signer {
	return &Signer{
		keys:    keys,
		caps:    caps,
		now:     time.Now,
		nonceFn: randomNonce,
	}
}

func randomNonce() ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

// SignRequest produces the four X-SOGS-* headers for the given request.
// path must include the query string when present. body is the raw request
// body, or nil/empty for bodyless requests.
//
// The signed message is the raw concatenation (no delimiters) of:
//
//	serverPubKey ‖ nonce(16) ‖ ASCII(unix seconds) ‖ METHOD ‖ path[?query] ‖ BLAKE2b-64(body)
//
// with the body hash omitted entirely when the body is empty.
func (s *Signer) SignRequest(method, path string, body []byte, server models.Server) (map[string]string, error) {
	if s.keys == nil {
		return nil, fmt.Errorf("%w: no local key material", ErrSigningFailed)
	}

	serverPubKey, err := decodeServerKey(server.PublicKey)
	if err != nil {
		return nil, err
	}

	nonce, err := s.nonceFn()
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrSigningFailed, err)
	}

	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	message := make([]byte, 0, len(serverPubKey)+len(nonce)+len(timestamp)+len(method)+len(path)+64)
	message = append(message, serverPubKey...)
	message = append(message, nonce...)
	message = append(message, timestamp...)
	message = append(message, strings.ToUpper(method)...)
	message = append(message, path...)

	if len(body) > 0 {
		bodyHash, err := crypto.GenericHash(64, body)
		if err != nil {
			return nil, fmt.Errorf("%w: body hash: %v", ErrSigningFailed, err)
		}
		message = append(message, bodyHash...)
	}

	pubkey, signature, err := s.sign(message, server)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		HeaderPubkey:    pubkey,
		HeaderTimestamp: timestamp,
		HeaderNonce:     base64.StdEncoding.EncodeToString(nonce),
		HeaderSignature: base64.StdEncoding.EncodeToString(signature),
	}, nil
}

// SignContent signs a message payload for posting to a room, with the
// same scheme selection as request signing. It returns the session ID
// the payload will be attributed to and the raw signature.
func (s *Signer) SignContent(message []byte, server models.Server) (string, []byte, error) {
	if s.keys == nil {
		return "", nil, fmt.Errorf("%w: no identity key loaded", ErrSigningFailed)
	}
	return s.sign(message, server)
}

// sign picks the scheme for server and signs message, returning the
// identity string presented to the server and the raw signature. Blinded
// when the server advertises the blind capability, unblinded otherwise.
func (s *Signer) sign(message []byte, server models.Server) (string, []byte, error) {
	if s.caps.Supports(server.Name, models.CapabilityBlind) {
		blinded, err := crypto.DeriveBlindedKeyPair(server.PublicKey, *s.keys)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
		}

		signature, err := crypto.BlindedSignature(message, *s.keys, blinded)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
		}

		return blinded.BlindedID().String(), signature, nil
	}

	return s.keys.UnblindedID().String(), s.keys.Sign(message), nil
}

func decodeServerKey(pubKeyHex string) ([]byte, error) {
	raw, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: not hex: %v", crypto.ErrInvalidServerKey, err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", crypto.ErrInvalidServerKey, len(raw))
	}
	return raw, nil
}
