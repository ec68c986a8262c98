package checkout

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) InitiateCheckout(ctx context.Context, userUID, planType, clientType string) (*subscriptionservice.CheckoutResult, error) {
	args := m.Called(ctx, userUID, planType, clientType)
	if res := args.Get(0); res != nil {
		return res.(*subscriptionservice.CheckoutResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCheckoutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "successful checkout",
			body:    `{"plan_type":"7_days","client_type":"web"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("InitiateCheckout", mock.Anything, "uid-1", "7_days", "web").
					Return(&subscriptionservice.CheckoutResult{SessionID: "cs_1", URL: "https://pay.example/cs_1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"session_id":"cs_1"`,
		},
		{
			name:           "unauthenticated",
			body:           `{"plan_type":"7_days"}`,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "invalid plan type",
			body:    `{"plan_type":"1_year"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("InitiateCheckout", mock.Anything, "uid-1", "1_year", "").
					Return(nil, fmt.Errorf("%w: %q", subscriptionservice.ErrInvalidPlanType, "1_year"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid plan type`,
		},
		{
			name:           "invalid json",
			body:           `{plan_type}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:    "gateway unavailable",
			body:    `{"plan_type":"1_day"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("InitiateCheckout", mock.Anything, "uid-1", "1_day", "").
					Return(nil, paymentprovider.ErrUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"payment gateway unavailable"`,
		},
		{
			name:    "no subscription record",
			body:    `{"plan_type":"1_day"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("InitiateCheckout", mock.Anything, "uid-1", "1_day", "").
					Return(nil, subscriptionservice.ErrNoSubscription)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"no active subscription found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions/create", strings.NewReader(tt.body))
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
