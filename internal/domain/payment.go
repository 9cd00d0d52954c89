package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidSignature indicates that a webhook payload failed signature verification.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrUnknownReference indicates that a checkout event carries a client
	// reference that resolves to no account.
	ErrUnknownReference = errors.New("unknown client reference")
	// ErrNonPositiveAmount indicates a checkout amount that is zero or negative.
	ErrNonPositiveAmount = errors.New("non-positive checkout amount")
	// ErrInvalidSessionID indicates a provider session id unsafe to record.
	ErrInvalidSessionID = errors.New("invalid payment session id")
)

// CheckoutEvent is a completed-checkout notification parsed from a verified
// provider webhook.
type CheckoutEvent struct {
	// SessionID is the provider-assigned checkout session id. It is the
	// idempotency key: each distinct id credits a ledger at most once.
	SessionID string
	// ClientReference identifies the paying user. It is either an account ID
	// propagated at checkout time or a raw email address.
	ClientReference string
	// Amount is the credited value in currency units, converted from the
	// provider's integer minor units.
	Amount decimal.Decimal
}

// CheckoutResult reports how a webhook delivery was reconciled.
type CheckoutResult string

const (
	// CheckoutCredited means a new ledger entry was appended.
	CheckoutCredited CheckoutResult = "credited"
	// CheckoutDuplicate means the session was already processed; no-op.
	CheckoutDuplicate CheckoutResult = "duplicate"
	// CheckoutIgnored means the event type is not handled; no-op.
	CheckoutIgnored CheckoutResult = "ignored"
	// CheckoutDropped means the event could not be applied (bad reference or
	// amount); acknowledged so the provider stops redelivering it.
	CheckoutDropped CheckoutResult = "dropped"
)
