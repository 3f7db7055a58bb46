package auth

import "errors"

// Sentinel errors for identity resolution.
var (
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrUnknownAPIKey  = errors.New("auth: unknown api key")
	ErrNoSecret       = errors.New("auth: signing secret not configured")
)
