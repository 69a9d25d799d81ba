package parser

import "errors"

// Sentinel errors for scan failures. Term-level failures (invalid boost,
// invalid bracket, append after close) propagate from the query package.
var (
	ErrUnbalancedBracket = errors.New("unbalanced bracket")
	ErrUnterminatedQuote = errors.New("unterminated quote")
	ErrUnknownField      = errors.New("unknown field")
	ErrMaxDepth          = errors.New("max bracket depth exceeded")
)
