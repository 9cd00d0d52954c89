// Package loginservice manages business logic layer of email-code logins.
package loginservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
	"github.com/alliterative/accountd/pkg/identitypkg"
	"github.com/alliterative/accountd/pkg/passpkg"
	"github.com/alliterative/accountd/pkg/randompkg"
)

// Repo provides data access layer interface needed by login service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loginservice
type Repo interface {
	SaveCodeHash(ctx context.Context, accountID, codeHash string) error
	GetCodeHash(ctx context.Context, accountID string) (string, error)
	DeleteCode(ctx context.Context, accountID string) error
}

// Notifier delivers an issued login code to its email address out-of-band.
type Notifier interface {
	SendLoginCode(ctx context.Context, email, accountID, code string) error
}

// Service facilitates login service layer logic.
type Service struct {
	repo     Repo
	notifier Notifier
}

// New returns login service struct to manage login business logic.
func New(lr Repo, n Notifier) *Service {
	return &Service{
		repo:     lr,
		notifier: n,
	}
}

// IssueCode generates a fresh login code for the email, stores its hash and
// dispatches the code, returning the derived account ID. The previous code,
// if any, is invalidated by the overwrite.
//
// Delivery is best-effort: it runs detached from the request and a failure is
// logged without affecting the issued code.
func (s *Service) IssueCode(ctx context.Context, email string) (string, error) {
	l := zerolog.Ctx(ctx)

	accountID := identitypkg.Derive(email)
	code := randompkg.LoginCode()

	codeHash, err := passpkg.Hash(code)
	if err != nil {
		l.Error().Err(err).Send()
		return "", errorspkg.ErrInternal
	}

	if err := s.repo.SaveCodeHash(ctx, accountID, codeHash); err != nil {
		return "", err
	}

	// Detach from the request context: the email outlives the response.
	sendCtx := l.WithContext(context.Background())

	go func() {
		if err := s.notifier.SendLoginCode(sendCtx, email, accountID, code); err != nil {
			l.Warn().Err(err).Str("account_id", accountID).Msg("login code email not sent")
		}
	}()

	return accountID, nil
}

// Verify checks the submitted code against the most recently issued one and
// consumes it on success, returning the account ID. Every failure mode maps
// to domain.ErrInvalidLoginCode so callers cannot tell a missing account from
// a wrong code.
func (s *Service) Verify(ctx context.Context, email, code string) (string, error) {
	l := zerolog.Ctx(ctx)

	accountID := identitypkg.Derive(email)

	codeHash, err := s.repo.GetCodeHash(ctx, accountID)
	if err != nil {
		return "", err
	}

	if err := passpkg.Check(code, codeHash); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			// Stored hash does not even parse; corruption, not a bad guess.
			l.Error().Err(err).Str("account_id", accountID).Msg("stored login code hash is malformed")
		}

		return "", domain.ErrInvalidLoginCode
	}

	// Codes are single-use. Losing the consume race fails the login.
	if err := s.repo.DeleteCode(ctx, accountID); err != nil {
		return "", err
	}

	return accountID, nil
}
