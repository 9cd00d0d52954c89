// Package ledgerservice manages business logic layer of balance ledgers.
package ledgerservice

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alliterative/accountd/internal/domain"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Append(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Entry, error)
	List(ctx context.Context, accountID string) ([]domain.Entry, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo Repo
}

// New returns ledger service struct to manage ledger business logic.
func New(lr Repo) *Service {
	return &Service{repo: lr}
}

// Append adds one signed delta to the account's ledger. A zero amount means
// "no change" and writes no line.
func (s *Service) Append(ctx context.Context, accountID string, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}

	_, err := s.repo.Append(ctx, accountID, amount)

	return err
}

// Balance folds the account's ledger. An empty or absent ledger is 0.
func (s *Service) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	entries, err := s.repo.List(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Amount)
	}

	return balance, nil
}

// Charge debits the account by the given positive amount. This is the hook
// usage-based collaborators such as the streaming relay bill through.
func (s *Service) Charge(ctx context.Context, accountID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrNonPositiveAmount
	}

	return s.Append(ctx, accountID, amount.Neg())
}
