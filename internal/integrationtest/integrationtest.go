// Package integrationtest provides server and seed helpers used in integration tests.
package integrationtest

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alliterative/accountd/cmd/httpserver"
	"github.com/alliterative/accountd/internal/accountstore"
	"github.com/alliterative/accountd/internal/ledgerrepo"
	"github.com/alliterative/accountd/internal/loginrepo"
	"github.com/alliterative/accountd/internal/middleware"
	"github.com/alliterative/accountd/pkg/configpkg"
	"github.com/alliterative/accountd/pkg/identitypkg"
	"github.com/alliterative/accountd/pkg/passpkg"
	"github.com/alliterative/accountd/pkg/randompkg"
)

// SetupServer returns a test server backed by a throwaway data directory.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config := configpkg.Config{
		ServerAddress:        "0.0.0.0:8080",
		DataDir:              t.TempDir(),
		BaseURL:              "http://localhost:3000",
		TokenSymmetricKey:    randompkg.String(32),
		AccessTokenDuration:  time.Minute,
		StripeEndpointSecret: "whsec_" + randompkg.String(16),
		LoginRateLimit:       1000,
		Environment:          "test",
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.GetLogger(config)

	store, err := accountstore.New(config.DataDir)
	if err != nil {
		t.Fatalf("accountstore.New(%v) returned error: %v", config.DataDir, err)
	}

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(store, logger, config)
	if err != nil {
		t.Fatalf("httpserver.New(store, logger, config) returned error: %v", err)
	}

	return server
}

// SeedLoginCode stores the hash of a known login code for the email and
// returns the derived account id.
func SeedLoginCode(t *testing.T, store *accountstore.Store, email, code string) string {
	t.Helper()

	accountID := identitypkg.Derive(email)

	codeHash, err := passpkg.Hash(code)
	if err != nil {
		t.Fatalf("passpkg.Hash(code) returned error: %v", err)
	}

	repo := loginrepo.NewRepoFS(store)
	if err := repo.SaveCodeHash(context.Background(), accountID, codeHash); err != nil {
		t.Fatalf("repo.SaveCodeHash(ctx, %v, codeHash) returned error: %v", accountID, err)
	}

	return accountID
}

// SeedCredit appends a ledger entry for the account.
func SeedCredit(t *testing.T, store *accountstore.Store, accountID string, amount decimal.Decimal) {
	t.Helper()

	repo := ledgerrepo.NewRepoFS(store)
	if _, err := repo.Append(context.Background(), accountID, amount); err != nil {
		t.Fatalf("repo.Append(ctx, %v, %v) returned error: %v", accountID, amount, err)
	}
}
