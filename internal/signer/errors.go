package signer

import "errors"

var ErrSigningFailed = errors.New("signing failed")
