package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// rawLen is the number of random bytes backing a terminal credential.
// 32 bytes encode to a fixed 43-character base64url string.
const rawLen = 32

// EncodedLen is the length of every token produced by New.
const EncodedLen = 43

// New returns an unguessable opaque token for a kiosk terminal.
func New() (string, error) {
	buf := make([]byte, rawLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Equal compares a candidate token against the stored one in constant time.
// Length is checked first; tokens are fixed-length so a mismatch is not an
// oracle.
func Equal(candidate, stored string) bool {
	if len(candidate) != len(stored) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
}
