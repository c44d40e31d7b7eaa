// Package vouchercode generates and validates gift voucher codes in the
// SA-69-XXXX-YYYY format used by the Siam Araya storefront.
package vouchercode

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

// Alphabet excludes 0, O, 1 and I to avoid transcription mistakes on
// printed vouchers.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Prefix is the fixed campaign prefix of every voucher code.
const Prefix = "SA-69"

const groupLen = 4

var codePattern = regexp.MustCompile(`^SA-69-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)

// Generate returns a new random voucher code. Uniqueness is not guaranteed
// here; callers must check the generated code against existing ones and
// retry on collision.
func Generate() (string, error) {
	group1, err := randomGroup()
	if err != nil {
		return "", err
	}
	group2, err := randomGroup()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", Prefix, group1, group2), nil
}

// IsWellFormed reports whether code matches the SA-69-XXXX-YYYY format over
// the restricted alphabet.
func IsWellFormed(code string) bool {
	return codePattern.MatchString(code)
}

// Normalize uppercases a user-entered code and trims surrounding whitespace.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func randomGroup() (string, error) {
	bytes := make([]byte, groupLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	chars := make([]byte, groupLen)
	for i, b := range bytes {
		chars[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(chars), nil
}
