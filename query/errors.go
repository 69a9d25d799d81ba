package query

import "errors"

// Sentinel errors for term construction.
var (
	ErrIllegalState   = errors.New("value buffer already closed")
	ErrInvalidBoost   = errors.New("invalid boost value")
	ErrInvalidBracket = errors.New("invalid bracket")
)
