// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// ErrInvalidLoginCode indicates a failed login attempt. Missing account,
// never-issued code and plain mismatch are deliberately indistinguishable.
var ErrInvalidLoginCode = errors.New("invalid email or login code")

// Account holds the anonymous identity one email address resolves to.
//
// ID is the one-way digest of the email; the address itself is never stored.
type Account struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
