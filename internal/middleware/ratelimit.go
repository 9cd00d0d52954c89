package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/alliterative/accountd/pkg/web"
)

// NewLoginLimiter returns an in-memory limiter allowing rate requests per
// minute per client IP.
func NewLoginLimiter(rate int64) *limiter.Limiter {
	return limiter.New(memory.NewStore(), limiter.Rate{
		Period: time.Minute,
		Limit:  rate,
	})
}

// RateLimit rejects requests from clients that exceeded the limiter's rate.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := gctx.Request.Context()
		l := zerolog.Ctx(ctx)

		ip := gctx.ClientIP()

		limiterCtx, err := limiterInstance.Get(ctx, ip)
		if err != nil {
			l.Error().Err(err).Str("ip", ip).Msg("rate limit check failed")
			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(err))

			return
		}

		if limiterCtx.Reached {
			l.Warn().Str("ip", ip).Int64("limit", limiterCtx.Limit).Msg("rate limit exceeded")
			gctx.AbortWithStatusJSON(http.StatusTooManyRequests, web.Response{Error: "too many requests"})

			return
		}

		gctx.Next()
	}
}
