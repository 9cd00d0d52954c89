package paymentdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/alliterative/accountd/internal/domain"
	"github.com/alliterative/accountd/pkg/errorspkg"
)

func TestWebhook(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_123"}}}`)
	signature := "t=1700000000,v1=deadbeef"

	testCases := []struct {
		name           string
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name: "Credited",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					HandleWebhook(gomock.Any(), gomock.Eq(payload), gomock.Eq(signature)).
					Times(1).
					Return(domain.CheckoutCredited, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "DuplicateStillAcknowledged",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					HandleWebhook(gomock.Any(), gomock.Eq(payload), gomock.Eq(signature)).
					Times(1).
					Return(domain.CheckoutDuplicate, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "IgnoredStillAcknowledged",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					HandleWebhook(gomock.Any(), gomock.Eq(payload), gomock.Eq(signature)).
					Times(1).
					Return(domain.CheckoutIgnored, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InvalidSignature",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					HandleWebhook(gomock.Any(), gomock.Eq(payload), gomock.Eq(signature)).
					Times(1).
					Return(domain.CheckoutResult(""), domain.ErrInvalidSignature)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InternalError",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					HandleWebhook(gomock.Any(), gomock.Eq(payload), gomock.Eq(signature)).
					Times(1).
					Return(domain.CheckoutResult(""), errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service)

			gin.SetMode(gin.ReleaseMode)
			server := gin.New()
			server.POST("/top-up", handler.Webhook)

			request, err := http.NewRequest(http.MethodPost, "/top-up", bytes.NewReader(payload))
			require.NoError(t, err)
			request.Header.Set(SignatureHeader, signature)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, request)

			require.Equal(t, tc.wantStatusCode, w.Code)

			if tc.wantStatusCode == http.StatusOK {
				var res struct {
					Data struct {
						Received bool `json:"received"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				require.True(t, res.Data.Received)
			}
		})
	}
}
