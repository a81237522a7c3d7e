package registry

import (
	"crypto/rand"
	"fmt"
)

// PublicIDLength is the number of characters in a share id.
const PublicIDLength = 21

// publicIDAlphabet is URL safe and exactly 64 symbols long so one random
// byte masked to 6 bits picks a symbol without bias.
const publicIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// NewPublicID returns a random share id.
func NewPublicID() (string, error) {
	buf := make([]byte, PublicIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("registry: generate public id: %w", err)
	}
	for i, b := range buf {
		buf[i] = publicIDAlphabet[b&63]
	}
	return string(buf), nil
}
