package pkg

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// GenerateAccessToken returns an opaque account credential in the form
// ak_<26 base32 chars>.
func GenerateAccessToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	encoded := strings.ToLower(strings.TrimRight(
		base32.StdEncoding.EncodeToString(bytes), "="))

	return "ak_" + encoded, nil
}
