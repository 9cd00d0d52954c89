// Package ledgerrepo manages repository layer of balance ledgers.
package ledgerrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alliterative/accountd/internal/accountstore"
	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
)

// RepoFS facilitates ledger repository layer logic.
type RepoFS struct {
	store *accountstore.Store
}

// NewRepoFS returns ledger RepoFS.
func NewRepoFS(store *accountstore.Store) *RepoFS {
	return &RepoFS{store: store}
}

// Append adds one signed amount to the account's ledger and returns the
// written entry. Entries are immutable once appended.
func (r *RepoFS) Append(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	var e domain.Entry

	if err := r.store.Ensure(accountID); err != nil {
		l.Error().Err(err).Send()
		return e, errorspkg.ErrInternal
	}

	if err := r.store.Append(accountID, accountstore.KindLedger, []byte(amount.String())); err != nil {
		l.Error().Err(err).Send()
		return e, errorspkg.ErrInternal
	}

	e = domain.Entry{
		AccountID: accountID,
		Amount:    amount,
	}

	return e, nil
}

// List returns all ledger entries for the account in append order.
// An absent ledger is an empty one. A line that does not parse as a decimal
// surfaces as domain.ErrLedgerCorrupted rather than being coerced to zero.
func (r *RepoFS) List(ctx context.Context, accountID string) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	data, err := r.store.Read(accountID, accountstore.KindLedger)
	if err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			return nil, nil
		}

		l.Error().Err(err).Send()

		return nil, errorspkg.ErrInternal
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	entries := make([]domain.Entry, 0, len(lines))

	for _, line := range lines {
		if line == "" {
			continue
		}

		amount, err := decimal.NewFromString(line)
		if err != nil {
			l.Error().Err(err).Str("account_id", accountID).Str("line", line).Msg("ledger line does not parse")
			return nil, domain.ErrLedgerCorrupted
		}

		entries = append(entries, domain.Entry{AccountID: accountID, Amount: amount})
	}

	return entries, nil
}
