package service

import "errors"

var (
	// ErrInvalidArgument marks a missing or malformed caller-supplied value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorageUnavailable marks a failed call to the primary store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
