// Package relay declares the boundary between the account subsystem and the
// chat relay that streams completions to signed-in users. The relay itself
// runs elsewhere; this package only fixes the contracts it is reached through.
package relay

import (
	"context"

	"github.com/shopspring/decimal"
)

// Streamer produces a model completion for a prompt, delivering chunks through
// the given callback as they arrive.
type Streamer interface {
	Stream(ctx context.Context, prompt string, deliver func(chunk string) error) error
}

// Charger debits an account for relay usage. Implemented by the ledger
// service; amounts are positive and recorded as negative ledger entries.
type Charger interface {
	Charge(ctx context.Context, accountID string, amount decimal.Decimal) error
}
