package movieexplorer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-explorer/internal/config"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

type SubRepoMock struct{ mock.Mock }

func (m *SubRepoMock) GetSubscriptionByUserUID(ctx context.Context, userUID string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *SubRepoMock) SetCustomerRef(ctx context.Context, userUID, customerRef string) error {
	return m.Called(ctx, userUID, customerRef).Error(0)
}
func (m *SubRepoMock) ConfirmPurchase(ctx context.Context, customerRef, subscriptionRef string, expiresAt time.Time) (int, error) {
	args := m.Called(ctx, customerRef, subscriptionRef, expiresAt)
	return args.Int(0), args.Error(1)
}
func (m *SubRepoMock) DowngradeExpired(ctx context.Context, userUID string, now time.Time) (int, error) {
	args := m.Called(ctx, userUID, now)
	return args.Int(0), args.Error(1)
}

type SubUsersMock struct{ mock.Mock }

func (m *SubUsersMock) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateCustomer(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *GatewayMock) CreateCheckoutSession(ctx context.Context, params paymentprovider.CreateSessionParams) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}
func (m *GatewayMock) RetrieveSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

// Redirect платёжного шлюза приходит браузером без заголовка Authorization:
// success и cancel обязаны отвечать без аутентификации.
func TestRoutesGatewayRedirectsArePublic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	repo := new(SubRepoMock)
	provider := new(GatewayMock)
	provider.On("RetrieveSession", mock.Anything, "cs_1").Return(&paymentprovider.CheckoutSession{
		ID:           "cs_1",
		Customer:     "cus_123",
		Subscription: "sub_456",
		Metadata: map[string]string{
			"user_id":     "uid-1",
			"plan_type":   "1_day",
			"client_type": "web",
		},
	}, nil).Once()
	repo.On("ConfirmPurchase", mock.Anything, "cus_123", "sub_456", mock.Anything).Return(1, nil).Once()

	services := &Services{
		Subscription: subscriptionservice.New(repo, new(SubUsersMock), provider, config.Stripe{}, logger),
	}
	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	t.Run("success confirms without authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/success?session_id=cs_1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "Subscription updated successfully"),
			"response body should contain confirmation message, got %s", w.Body.String())
		repo.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("cancel responds without authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/cancel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "Subscription purchase was cancelled"),
			"response body should contain cancel message, got %s", w.Body.String())
	})

	t.Run("status still requires authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/status", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
