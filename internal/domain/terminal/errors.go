package terminal

import "errors"

// Terminal domain errors. Token validation outcomes are sentinels, not
// failures: handlers map them to their own response codes.
var (
	ErrTerminalNotFound = errors.New("terminal not found")
	ErrTokenExpired     = errors.New("terminal token has expired")
	ErrTokenUnknown     = errors.New("terminal token is not recognized")
)
