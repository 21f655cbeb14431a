// Package common defines shared constants and sentinel errors used across
// client and server layers of letterpal. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal = errors.New("internal error")

	// ErrInvalidCredentials is returned when the server rejects a login
	// attempt. The session manager never tears an existing session down
	// because of it.
	ErrInvalidCredentials = errors.New("invalid nickname or password")

	// ErrNicknameTaken is returned when registration fails because the
	// nickname is already in use.
	ErrNicknameTaken = errors.New("nickname already taken")

	// ErrUnauthorized is returned when an authenticated (non-login) call is
	// rejected with 401: the token expired or was revoked.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transport failures: connection refused, timeout,
	// 5xx from the server.
	ErrUnavailable = errors.New("server unavailable")

	// ErrCorruptState is returned when a persisted snapshot fails to parse.
	ErrCorruptState = errors.New("corrupt persisted state")

	ErrInvalidToken = errors.New("invalid token")
)
