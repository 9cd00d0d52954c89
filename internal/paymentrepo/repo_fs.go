// Package paymentrepo manages repository layer of processed payment sessions.
package paymentrepo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/alliterative/accountd/internal/accountstore"
	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
)

// RepoFS facilitates processed-session repository layer logic.
type RepoFS struct {
	store *accountstore.Store
}

// NewRepoFS returns processed-session RepoFS.
func NewRepoFS(store *accountstore.Store) *RepoFS {
	return &RepoFS{store: store}
}

// ClaimSession marks the session id as processed. The first caller for a
// given id gets true; every redelivery after that gets false.
func (r *RepoFS) ClaimSession(ctx context.Context, sessionID string) (bool, error) {
	l := zerolog.Ctx(ctx)

	claimed, err := r.store.ClaimSession(sessionID)
	if err != nil {
		if errors.Is(err, accountstore.ErrInvalidSessionID) {
			return false, domain.ErrInvalidSessionID
		}

		l.Error().Err(err).Send()

		return false, errorspkg.ErrInternal
	}

	return claimed, nil
}
