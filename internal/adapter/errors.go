package adapter

import "errors"

// Protocol error taxonomy. Unauthorized means the credential was rejected
// outright and any cached credential for the server must be invalidated;
// Forbidden means the credential was accepted but lacks privilege and is
// surfaced without invalidation. PreconditionFailed only appears inside
// /sequence responses, marking sub-requests skipped after an earlier
// failure.
var (
	ErrEncoding           = errors.New("request encoding failed")
	ErrDecoding           = errors.New("response decoding failed")
	ErrUnauthorized       = errors.New("credential rejected")
	ErrForbidden          = errors.New("insufficient privilege")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrNotFound           = errors.New("not found")
	ErrBadRequest         = errors.New("bad request")
)
