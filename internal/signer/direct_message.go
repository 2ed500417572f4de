package signer

import (
	"fmt"

	"github.com/sessionlab/go-sogs/internal/crypto"
	"github.com/sessionlab/go-sogs/models"
)

// SealInboxMessage encrypts message for delivery to recipientID's blinded
// inbox on server. The recipient must be a blinded (15-prefixed) session
// ID; the shared key is derived so that only the holder of the master key
// behind that blinded ID can open the result.
func (s *Signer) SealInboxMessage(message []byte, recipientID string, server models.Server) ([]byte, error) {
	if s.keys == nil {
		return nil, fmt.Errorf("%w: no local key material", ErrSigningFailed)
	}

	recipient, err := crypto.ParseSessionID(recipientID)
	if err != nil {
		return nil, err
	}
	if recipient.Prefix != crypto.PrefixBlinded {
		return nil, fmt.Errorf("%w: inbox recipient must be a blinded id", crypto.ErrInvalidSessionID)
	}

	blinded, err := crypto.DeriveBlindedKeyPair(server.PublicKey, *s.keys)
	if err != nil {
		return nil, err
	}

	key, err := crypto.SharedBlindedEncryptionKey(*s.keys, recipient.PublicKey, blinded.PublicKey, recipient.PublicKey)
	if err != nil {
		return nil, err
	}

	return crypto.SealDirectMessage(message, s.keys.PublicKey, key)
}

// OpenInboxMessage decrypts a sealed payload received in the local user's
// blinded inbox on server. senderBlindedID is the sender field of the
// direct message record. Returns the plaintext and the sender's Ed25519
// master public key embedded in it.
func (s *Signer) OpenInboxMessage(sealed []byte, senderBlindedID string, server models.Server) (message, senderEdPub []byte, err error) {
	if s.keys == nil {
		return nil, nil, fmt.Errorf("%w: no local key material", ErrSigningFailed)
	}

	sender, err := crypto.ParseSessionID(senderBlindedID)
	if err != nil {
		return nil, nil, err
	}

	blinded, err := crypto.DeriveBlindedKeyPair(server.PublicKey, *s.keys)
	if err != nil {
		return nil, nil, err
	}

	key, err := crypto.SharedBlindedEncryptionKey(*s.keys, sender.PublicKey, sender.PublicKey, blinded.PublicKey)
	if err != nil {
		return nil, nil, err
	}

	return crypto.OpenDirectMessage(sealed, key)
}
