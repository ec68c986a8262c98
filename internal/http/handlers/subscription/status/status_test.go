package status

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

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CheckStatus(ctx context.Context, userUID string) (*subscriptionservice.StatusResult, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.(*subscriptionservice.StatusResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "active premium",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CheckStatus", mock.Anything, "uid-1").
					Return(&subscriptionservice.StatusResult{PlanType: models.PlanPremium}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"plan_type":"premium"`,
		},
		{
			name:    "downgrade reported in the same response",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CheckStatus", mock.Anything, "uid-1").
					Return(&subscriptionservice.StatusResult{
						PlanType: models.PlanBasic,
						Message:  subscriptionservice.DowngradeMessage,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Your subscription has expired. Downgrading to basic plan."`,
		},
		{
			name:           "unauthenticated",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "no subscription",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CheckStatus", mock.Anything, "uid-1").
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

			req := httptest.NewRequest(http.MethodGet, "/subscriptions/status", nil)
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
