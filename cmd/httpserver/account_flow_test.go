//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alliterative/accountd/cmd/httpserver"
	"github.com/alliterative/accountd/internal/integrationtest"
	"github.com/alliterative/accountd/internal/middleware"
	"github.com/alliterative/accountd/internal/paymentservice"
	"github.com/alliterative/accountd/pkg/randompkg"
	"github.com/alliterative/accountd/pkg/tokenpkg"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Data        struct {
		Balance *string `json:"balance"`
	} `json:"data"`
}

func postJSON(t *testing.T, server *httpserver.Server, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal(%v) returned error: %v", body, err)
	}

	request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("http.NewRequest(POST, %v, body) returned error: %v", url, err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func getBalance(t *testing.T, server *httpserver.Server, accountID string) *httptest.ResponseRecorder {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(key) returned error: %v", err)
	}

	request, err := http.NewRequest(http.MethodGet, "/balance", nil)
	if err != nil {
		t.Fatalf("http.NewRequest(GET, /balance, nil) returned error: %v", err)
	}

	err = middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, accountID, time.Minute)
	if err != nil {
		t.Fatalf("middleware.AddAuthorization(...) returned error: %v", err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func decodeBalance(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var res struct {
		Data struct {
			Balance string `json:"balance"`
		} `json:"data"`
	}

	if err := json.Unmarshal(recorder.Body.Bytes(), &res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return res.Data.Balance
}

func TestLoginFlowAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	email := randompkg.Email()
	code := randompkg.LoginCode()

	recorder := postJSON(t, server, "/request-email", map[string]string{"email": email})
	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /request-email status = %v, want %v", recorder.Code, http.StatusOK)
	}

	accountID := integrationtest.SeedLoginCode(t, server.Store, email, code)

	// A wrong code must not reveal whether the account exists.
	recorder = postJSON(t, server, "/login", map[string]string{"email": email, "code": "wrong"})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("POST /login with wrong code status = %v, want %v", recorder.Code, http.StatusUnauthorized)
	}

	var denied loginResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &denied); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if denied.Data.Balance != nil {
		t.Errorf("denied.Data.Balance = %v, want nil", *denied.Data.Balance)
	}

	recorder = postJSON(t, server, "/login", map[string]string{"email": email, "code": code})
	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /login status = %v, want %v", recorder.Code, http.StatusOK)
	}

	var granted loginResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &granted); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if granted.AccessToken == "" {
		t.Error("granted.AccessToken is empty, want token")
	}

	if granted.Data.Balance == nil || *granted.Data.Balance != "0" {
		t.Errorf("granted.Data.Balance = %v, want 0", granted.Data.Balance)
	}

	// The code is single use.
	recorder = postJSON(t, server, "/login", map[string]string{"email": email, "code": code})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("POST /login reusing code status = %v, want %v", recorder.Code, http.StatusUnauthorized)
	}

	recorder = getBalance(t, server, accountID)
	if recorder.Code != http.StatusOK {
		t.Fatalf("GET /balance status = %v, want %v", recorder.Code, http.StatusOK)
	}

	if got := decodeBalance(t, recorder); got != "0" {
		t.Errorf("balance = %v, want 0", got)
	}
}

func TestTopUpFlowAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	email := randompkg.Email()
	accountID := integrationtest.SeedLoginCode(t, server.Store, email, randompkg.LoginCode())
	sessionID := "cs_test_" + randompkg.String(10)

	payload := []byte(fmt.Sprintf(
		`{"type":"checkout.session.completed","data":{"object":{"id":%q,"client_reference_id":%q,"amount_subtotal":1000}}}`,
		sessionID, accountID,
	))

	deliver := func(header string) *httptest.ResponseRecorder {
		request, err := http.NewRequest(http.MethodPost, "/top-up", bytes.NewReader(payload))
		if err != nil {
			t.Fatalf("http.NewRequest(POST, /top-up, body) returned error: %v", err)
		}

		request.Header.Set("Stripe-Signature", header)

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, request)

		return recorder
	}

	header := paymentservice.SignPayload(server.Config.StripeEndpointSecret, time.Now(), payload)

	recorder := deliver(header)
	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /top-up status = %v, want %v", recorder.Code, http.StatusOK)
	}

	recorder = getBalance(t, server, accountID)
	if got := decodeBalance(t, recorder); got != "10" {
		t.Errorf("balance after top-up = %v, want 10", got)
	}

	// Redelivery of the same session must not credit twice.
	recorder = deliver(header)
	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /top-up redelivery status = %v, want %v", recorder.Code, http.StatusOK)
	}

	recorder = getBalance(t, server, accountID)
	if got := decodeBalance(t, recorder); got != "10" {
		t.Errorf("balance after redelivery = %v, want 10", got)
	}

	// A forged signature must not touch the ledger.
	recorder = deliver(paymentservice.SignPayload("whsec_forged", time.Now(), payload))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("POST /top-up forged signature status = %v, want %v", recorder.Code, http.StatusBadRequest)
	}

	recorder = getBalance(t, server, accountID)
	if got := decodeBalance(t, recorder); got != "10" {
		t.Errorf("balance after forged delivery = %v, want 10", got)
	}
}
