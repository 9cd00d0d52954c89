// Package paymentservice reconciles payment provider webhooks into ledger credits.
package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/identitypkg"
)

// eventCheckoutCompleted is the only provider event type that credits a ledger.
const eventCheckoutCompleted = "checkout.session.completed"

// Repo provides data access layer interface needed by payment service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package paymentservice
type Repo interface {
	ClaimSession(ctx context.Context, sessionID string) (bool, error)
}

// Ledger applies reconciled credits.
type Ledger interface {
	Append(ctx context.Context, accountID string, amount decimal.Decimal) error
}

// Service facilitates payment reconciliation logic.
type Service struct {
	repo           Repo
	ledger         Ledger
	endpointSecret []byte

	now func() time.Time
}

// New returns payment service struct to manage webhook reconciliation.
func New(pr Repo, ledger Ledger, endpointSecret string) *Service {
	return &Service{
		repo:           pr,
		ledger:         ledger,
		endpointSecret: []byte(endpointSecret),
		now:            time.Now,
	}
}

// checkoutSession mirrors the provider's checkout session object.
type checkoutSession struct {
	ID                string `json:"id"`
	ClientReferenceID string `json:"client_reference_id"`
	CustomerEmail     string `json:"customer_email"`
	AmountSubtotal    int64  `json:"amount_subtotal"` // minor units
}

type event struct {
	Type string `json:"type"`
	Data struct {
		Object checkoutSession `json:"object"`
	} `json:"data"`
}

// HandleWebhook verifies and reconciles one webhook delivery.
//
// The payload must be the exact raw request body: the signature covers its
// bytes. A failed signature returns domain.ErrInvalidSignature and nothing is
// written. Redeliveries of an already-processed session are acknowledged as
// no-ops, so each session credits a ledger at most once.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) (domain.CheckoutResult, error) {
	l := zerolog.Ctx(ctx)

	if err := s.verifySignature(payload, sigHeader); err != nil {
		l.Warn().Err(err).Msg("webhook signature rejected")
		return "", domain.ErrInvalidSignature
	}

	var ev event
	if err := json.Unmarshal(payload, &ev); err != nil {
		// Signed but unparseable. Acknowledge so the provider stops
		// redelivering a payload that will never parse.
		l.Error().Err(err).Msg("verified webhook payload does not parse")
		return domain.CheckoutDropped, nil
	}

	if ev.Type != eventCheckoutCompleted {
		return domain.CheckoutIgnored, nil
	}

	session := ev.Data.Object

	amount := decimal.New(session.AmountSubtotal, -2)
	if !amount.IsPositive() {
		l.Error().Str("session_id", session.ID).Int64("amount_subtotal", session.AmountSubtotal).
			Msg("checkout amount is not positive, dropping")
		return domain.CheckoutDropped, nil
	}

	accountID, err := resolveReference(session)
	if err != nil {
		l.Error().Err(err).Str("session_id", session.ID).Msg("cannot resolve paying account, dropping")
		return domain.CheckoutDropped, nil
	}

	claimed, err := s.repo.ClaimSession(ctx, session.ID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSessionID) {
			l.Error().Err(err).Msg("unusable session id, dropping")
			return domain.CheckoutDropped, nil
		}

		return "", err
	}

	if !claimed {
		l.Info().Str("session_id", session.ID).Msg("session already processed")
		return domain.CheckoutDuplicate, nil
	}

	if err := s.ledger.Append(ctx, accountID, amount); err != nil {
		// The session is claimed but not credited; surface loudly so an
		// operator reconciles it instead of the provider redelivering into
		// a duplicate no-op.
		l.Error().Err(err).Str("session_id", session.ID).Str("account_id", accountID).
			Msg("session claimed but credit failed")
		return "", err
	}

	l.Info().Str("session_id", session.ID).Str("account_id", accountID).
		Str("amount", amount.String()).Msg("checkout credited")

	return domain.CheckoutCredited, nil
}

// resolveReference maps the checkout's client reference to an account ID.
// The reference is either an account ID propagated at checkout time or a raw
// email to re-derive. Anything else is unresolvable and must not be credited.
func resolveReference(session checkoutSession) (string, error) {
	for _, ref := range []string{session.ClientReferenceID, session.CustomerEmail} {
		if ref == "" {
			continue
		}

		if identitypkg.IsID(ref) {
			return ref, nil
		}

		if strings.Contains(ref, "@") {
			return identitypkg.Derive(ref), nil
		}
	}

	return "", domain.ErrUnknownReference
}
