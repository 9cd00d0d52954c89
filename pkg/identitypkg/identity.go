// Package identitypkg derives opaque account identifiers from email addresses.
package identitypkg

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// IDLength is the length of a derived account ID in hex characters.
const IDLength = sha256.Size * 2

// Derive maps an email address to its account ID.
//
// The mapping is deterministic and one-way: the ID is the SHA-256 hex digest
// of the normalized address, so raw emails never appear on disk. Normalization
// trims surrounding whitespace and lowercases, so "A@x.com " and "a@x.com"
// resolve to the same account.
func Derive(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	digest := sha256.Sum256([]byte(normalized))

	return hex.EncodeToString(digest[:])
}

// IsID reports whether s has the shape of a derived account ID.
func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}
