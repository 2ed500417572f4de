package crypto

import (
	"encoding/hex"
	"fmt"
)

// IDPrefix distinguishes the three public encodings of a user identity.
type IDPrefix string

const (
	// PrefixStandard marks the X25519 form of the master identity key.
	PrefixStandard IDPrefix = "05"
	// PrefixUnblinded marks the raw Ed25519 master public key.
	PrefixUnblinded IDPrefix = "00"
	// PrefixBlinded marks a per-server blinded public key.
	PrefixBlinded IDPrefix = "15"
)

// SessionID is a parsed session identifier: a one-byte prefix plus a
// 32-byte public key. The same underlying user appears under up to three
// different SessionIDs depending on which encoding a server demands.
type SessionID struct {
	Prefix    IDPrefix
	PublicKey []byte
}

// ParseSessionID splits a 66-hex-character session ID string into its
// prefix and key bytes.
func ParseSessionID(s string) (SessionID, error) {
	if len(s) != 66 {
		return SessionID{}, fmt.Errorf("%w: expected 66 hex chars, got %d", ErrInvalidSessionID, len(s))
	}

	prefix := IDPrefix(s[:2])
	switch prefix {
	case PrefixStandard, PrefixUnblinded, PrefixBlinded:
	default:
		return SessionID{}, fmt.Errorf("%w: unknown prefix %q", ErrInvalidSessionID, s[:2])
	}

	key, err := hex.DecodeString(s[2:])
	if err != nil {
		return SessionID{}, fmt.Errorf("%w: %v", ErrInvalidSessionID, err)
	}

	return SessionID{Prefix: prefix, PublicKey: key}, nil
}

// String returns the canonical hex encoding: prefix followed by the
// lowercase hex of the public key.
func (id SessionID) String() string {
	return string(id.Prefix) + hex.EncodeToString(id.PublicKey)
}
