package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// codeBytes is the number of random bytes behind a trip code. Six bytes
// base64url-encode to exactly eight characters.
const codeBytes = 6

// GenerateCode returns a short URL-safe random token used as a trip's
// public join code. Collisions are not checked here; the unique index on
// trips.code makes a collision fail the insert instead of silently
// clobbering an existing trip.
func GenerateCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
