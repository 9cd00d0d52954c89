// Package passpkg manages hashing and checking of login secrets.
package passpkg

import "golang.org/x/crypto/bcrypt"

// Hash returns the bcrypt hash of the given secret.
//
// Login codes are persisted hashed so a leaked data directory does not yield
// usable codes.
func Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Check compares the given secret against its stored bcrypt hash.
func Check(secret, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
}
