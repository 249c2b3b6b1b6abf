// Package common defines shared constants and sentinel errors used across
// storage, session and console layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrIO         = errors.New("i/o error")
	ErrShortWrite = errors.New("short write")

	// Auth errors.
	ErrUnknownUser           = errors.New("unknown user")
	ErrWrongPassword         = errors.New("wrong password")
	ErrCredentialUnavailable = errors.New("credential unavailable")

	// Parse errors (malformed command argument).
	ErrInvalidArgument = errors.New("invalid argument")
)
