package service

import (
	"crypto/rand"
	"encoding/hex"
)

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// newUserID generates an opaque user identifier in the wire format the
// clients expect.
func newUserID() string {
	return "user_" + randomHex(8)
}

// newSessionToken generates a fresh bearer token. Tokens are rotated on
// every login; the previous token simply stops matching.
func newSessionToken() string {
	return "nexus_" + randomHex(24)
}
