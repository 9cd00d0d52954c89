// Package randompkg provides functionality for generating random application common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"

	// codeAlphabet is the alphabet login codes are drawn from.
	codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// CodeLength is the standardized login code length. 24 characters over a
	// 36-character alphabet carry just over 124 bits of entropy.
	CodeLength = 24
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// LoginCode generates a fresh single-use login code.
func LoginCode() string {
	var sb strings.Builder

	k := len(codeAlphabet)

	for i := 0; i < CodeLength; i++ {
		c := codeAlphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}
