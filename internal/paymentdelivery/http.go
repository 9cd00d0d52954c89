// Package paymentdelivery manages delivery layer of payment provider webhooks.
package paymentdelivery

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
	"github.com/alliterative/accountd/pkg/web"
)

// SignatureHeader carries the provider's payload signature.
const SignatureHeader = "Stripe-Signature"

var checkoutWebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "accountd_checkout_webhooks_total",
	Help: "Total number of checkout webhook deliveries by reconciliation result.",
}, []string{"result"})

// Service provides service layer interface needed by payment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package paymentdelivery
type Service interface {
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (domain.CheckoutResult, error)
}

// Handler facilitates payment delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns payment handler.
func NewHandler(ps Service) Handler {
	return Handler{service: ps}
}

type webhookData struct {
	Received bool `json:"received"`
}

// Webhook handles an http webhook delivery from the payment provider.
//
// The signature covers the exact bytes on the wire, so the body is read raw
// and never rebound through JSON before verification.
func (h *Handler) Webhook(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	payload, err := io.ReadAll(gctx.Request.Body)
	if err != nil {
		l.Info().Err(err).Msg("reading webhook body failed")
		checkoutWebhooksTotal.WithLabelValues("rejected").Inc()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	result, err := h.service.HandleWebhook(ctx, payload, gctx.GetHeader(SignatureHeader))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			checkoutWebhooksTotal.WithLabelValues("rejected").Inc()
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidSignature))

			return
		}

		checkoutWebhooksTotal.WithLabelValues("failed").Inc()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	checkoutWebhooksTotal.WithLabelValues(string(result)).Inc()

	gctx.JSON(http.StatusOK, web.Response{Data: webhookData{Received: true}})
}
