// Package logindelivery manages delivery layer of email-code logins.
package logindelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
	"github.com/alliterative/accountd/pkg/tokenpkg"
	"github.com/alliterative/accountd/pkg/web"
)

// Service provides service layer interface needed by login delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package logindelivery
type Service interface {
	IssueCode(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (string, error)
}

// LedgerService reads the balance returned with a successful login.
type LedgerService interface {
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// Handler facilitates login delivery layer logic.
type Handler struct {
	service       Service
	ledger        LedgerService
	tokenMaker    tokenpkg.Maker
	tokenDuration time.Duration
}

// NewHandler returns login handler.
func NewHandler(ls Service, ledger LedgerService, tokenMaker tokenpkg.Maker, tokenDuration time.Duration) Handler {
	return Handler{
		service:       ls,
		ledger:        ledger,
		tokenMaker:    tokenMaker,
		tokenDuration: tokenDuration,
	}
}

type requestCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type okData struct {
	OK bool `json:"ok"`
}

// RequestCode handles http request to issue and send a login code.
//
// The response only reports that a code was issued; email delivery is
// best-effort and its outcome is never exposed to the caller.
func (h *Handler) RequestCode(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req requestCodeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	if _, err := h.service.IssueCode(ctx, req.Email); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: okData{OK: true}})
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type loginData struct {
	Balance *string `json:"balance"`
}

// Login handles http request to verify a login code.
//
// On success the response carries the account balance and an access token for
// subsequent authenticated calls. On mismatch the balance is null and nothing
// distinguishes a wrong code from an unknown account.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	accountID, err := h.service.Verify(ctx, req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLoginCode) {
			gctx.JSON(http.StatusUnauthorized, web.Response{Data: loginData{Balance: nil}})
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	balance, err := h.ledger.Balance(ctx, accountID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(accountID, h.tokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	balanceStr := balance.String()

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt.Format(time.RFC3339),
		Data:                 loginData{Balance: &balanceStr},
	}

	gctx.JSON(http.StatusOK, res)
}
