package store

import "errors"

var (
	ErrServerNotFound = errors.New("server not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrTokenNotFound  = errors.New("legacy token not found")
)
