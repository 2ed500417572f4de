package crypto

import "errors"

var (
	ErrInvalidKey       = errors.New("invalid key material")
	ErrInvalidServerKey = errors.New("invalid server public key")
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrDecryptionFailed = errors.New("decryption failed")
)
