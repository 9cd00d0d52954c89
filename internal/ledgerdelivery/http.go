// Package ledgerdelivery manages delivery layer of account balances.
package ledgerdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alliterative/accountd/internal/middleware"
	"github.com/alliterative/accountd/pkg/errorspkg"
	"github.com/alliterative/accountd/pkg/tokenpkg"
	"github.com/alliterative/accountd/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

type balanceData struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// GetBalance handles http request to read the balance of the authenticated account.
func (h *Handler) GetBalance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	balance, err := h.service.Balance(ctx, authPayload.AccountID)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: balanceData{
			AccountID: authPayload.AccountID,
			Balance:   balance.String(),
		},
	}

	gctx.JSON(http.StatusOK, res)
}
