// Package loginrepo manages repository layer of login codes.
package loginrepo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/alliterative/accountd/internal/accountstore"
	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
)

// RepoFS facilitates login code repository layer logic.
type RepoFS struct {
	store *accountstore.Store
}

// NewRepoFS returns login code RepoFS.
func NewRepoFS(store *accountstore.Store) *RepoFS {
	return &RepoFS{store: store}
}

// SaveCodeHash overwrites the account's login code slot with the given hash,
// creating the account namespace if needed. Whatever code was stored before
// is invalidated by the overwrite.
func (r *RepoFS) SaveCodeHash(ctx context.Context, accountID, codeHash string) error {
	l := zerolog.Ctx(ctx)

	if err := r.store.Ensure(accountID); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if err := r.store.Write(accountID, accountstore.KindCode, []byte(codeHash)); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// GetCodeHash returns the stored login code hash for the account.
// A missing account or never-issued code fails closed.
func (r *RepoFS) GetCodeHash(ctx context.Context, accountID string) (string, error) {
	l := zerolog.Ctx(ctx)

	data, err := r.store.Read(accountID, accountstore.KindCode)
	if err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			return "", domain.ErrInvalidLoginCode
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	return string(data), nil
}

// DeleteCode consumes the stored login code. If the code is already gone the
// caller lost a consume race and the login must not succeed twice.
func (r *RepoFS) DeleteCode(ctx context.Context, accountID string) error {
	l := zerolog.Ctx(ctx)

	err := r.store.Remove(accountID, accountstore.KindCode)
	if err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			return domain.ErrInvalidLoginCode
		}

		l.Error().Err(err).Send()

		return errorspkg.ErrInternal
	}

	return nil
}
