// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/alliterative/accountd/internal/accountstore"
	"github.com/alliterative/accountd/internal/ledgerdelivery"
	"github.com/alliterative/accountd/internal/ledgerrepo"
	"github.com/alliterative/accountd/internal/ledgerservice"
	"github.com/alliterative/accountd/internal/logindelivery"
	"github.com/alliterative/accountd/internal/loginrepo"
	"github.com/alliterative/accountd/internal/loginservice"
	"github.com/alliterative/accountd/internal/middleware"
	"github.com/alliterative/accountd/internal/notifier"
	"github.com/alliterative/accountd/internal/paymentdelivery"
	"github.com/alliterative/accountd/internal/paymentrepo"
	"github.com/alliterative/accountd/internal/paymentservice"
	"github.com/alliterative/accountd/pkg/configpkg"
	"github.com/alliterative/accountd/pkg/tokenpkg"
)

const defaultLoginRateLimit = 5

// Server holds the account store, handlers router and configuration.
type Server struct {
	Store  *accountstore.Store
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(store *accountstore.Store, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	loginRepo := loginrepo.NewRepoFS(store)
	ledgerRepo := ledgerrepo.NewRepoFS(store)
	paymentRepo := paymentrepo.NewRepoFS(store)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	ledgerService := ledgerservice.New(ledgerRepo)
	loginService := loginservice.New(loginRepo, notifier.NewSMTPSender(config))
	paymentService := paymentservice.New(paymentRepo, ledgerService, config.StripeEndpointSecret)

	loginHandler := logindelivery.NewHandler(loginService, ledgerService, tokenMaker, config.AccessTokenDuration)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	paymentHandler := paymentdelivery.NewHandler(paymentService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.Metrics())
	engine.Use(cors.Default())

	loginRate := config.LoginRateLimit
	if loginRate <= 0 {
		loginRate = defaultLoginRateLimit
	}

	loginLimiter := middleware.NewLoginLimiter(loginRate)

	engine.POST("/request-email", middleware.RateLimit(loginLimiter), loginHandler.RequestCode)
	engine.POST("/login", loginHandler.Login)
	engine.POST("/top-up", paymentHandler.Webhook)

	engine.GET("/balance", middleware.AuthMiddleware(tokenMaker), ledgerHandler.GetBalance)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &Server{
		Store:  store,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
