package success

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ConfirmCheckout(ctx context.Context, sessionID string) (*subscriptionservice.ConfirmResult, error) {
	args := m.Called(ctx, sessionID)
	if res := args.Get(0); res != nil {
		return res.(*subscriptionservice.ConfirmResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSuccessHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "web confirmation",
			query: "?session_id=cs_1",
			setupMock: func(m *MockService) {
				m.On("ConfirmCheckout", mock.Anything, "cs_1").
					Return(&subscriptionservice.ConfirmResult{Message: "Subscription updated successfully"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Subscription updated successfully"`,
		},
		{
			name:           "missing session_id",
			query:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"missing session_id"`,
		},
		{
			name:  "unknown session",
			query: "?session_id=cs_unknown",
			setupMock: func(m *MockService) {
				m.On("ConfirmCheckout", mock.Anything, "cs_unknown").
					Return(nil, paymentprovider.ErrSessionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"checkout session not found"`,
		},
		{
			name:  "gateway timeout is a bad gateway, not a missing session",
			query: "?session_id=cs_1",
			setupMock: func(m *MockService) {
				m.On("ConfirmCheckout", mock.Anything, "cs_1").
					Return(nil, paymentprovider.ErrUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"error":"payment gateway unavailable"`,
		},
		{
			name:  "subscription missing locally",
			query: "?session_id=cs_1",
			setupMock: func(m *MockService) {
				m.On("ConfirmCheckout", mock.Anything, "cs_1").
					Return(nil, subscriptionservice.ErrSubscriptionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"subscription not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/success"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
