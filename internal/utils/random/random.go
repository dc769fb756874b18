// Package random provides cryptographically secure token generation.
package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Base64URL generates a cryptographically secure random base64url string
// from length random bytes. Used for project invite tokens, so the output
// must stay safe to embed in a URL path.
func Base64URL(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
