package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrLedgerCorrupted indicates an unparseable ledger line. Surfaced loudly
	// instead of defaulting the balance to zero.
	ErrLedgerCorrupted = errors.New("ledger data corrupted")
)

// Entry holds one signed balance change for an account. Entries are
// append-only; the balance is always the fold over them, never a stored field.
type Entry struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"` // can be negative or positive
}
