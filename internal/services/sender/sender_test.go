package sender

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-explorer/internal/pushprovider"
)

type TokensMock struct{ mock.Mock }

func (m *TokensMock) ListNotifiableDeviceTokens(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) SendNotification(ctx context.Context, deviceTokens []string, title, body string, data map[string]string) []pushprovider.DeliveryResult {
	args := m.Called(ctx, deviceTokens, title, body, data)
	return args.Get(0).([]pushprovider.DeliveryResult)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandleMovieCreated(t *testing.T) {
	t.Run("sends to all notifiable devices", func(t *testing.T) {
		tokens := new(TokensMock)
		provider := new(ProviderMock)
		tokens.On("ListNotifiableDeviceTokens", mock.Anything).
			Return([]string{"tok-1", "tok-2"}, nil).Once()
		provider.On("SendNotification", mock.Anything, []string{"tok-1", "tok-2"},
			"New Movie Added!",
			"Heat has been added to the Movie Explorer collection.",
			map[string]string{"movie_id": "7"}).
			Return([]pushprovider.DeliveryResult{
				{DeviceToken: "tok-1"},
				{DeviceToken: "tok-2"},
			}).Once()

		svc := New(tokens, provider, newNoopLogger())
		err := svc.HandleMovieCreated([]byte(`{"movie_id":7,"title":"Heat"}`))

		assert.NoError(t, err)
		provider.AssertExpectations(t)
	})

	t.Run("per-token failures are not an error", func(t *testing.T) {
		tokens := new(TokensMock)
		provider := new(ProviderMock)
		tokens.On("ListNotifiableDeviceTokens", mock.Anything).
			Return([]string{"tok-1", "tok-2"}, nil).Once()
		provider.On("SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]pushprovider.DeliveryResult{
				{DeviceToken: "tok-1"},
				{DeviceToken: "tok-2", Err: errors.New("unregistered token")},
			}).Once()

		svc := New(tokens, provider, newNoopLogger())
		err := svc.HandleMovieCreated([]byte(`{"movie_id":7,"title":"Heat"}`))

		assert.NoError(t, err)
	})

	t.Run("malformed payload is dropped without retry", func(t *testing.T) {
		tokens := new(TokensMock)
		svc := New(tokens, new(ProviderMock), newNoopLogger())

		err := svc.HandleMovieCreated([]byte("not-json"))

		assert.NoError(t, err)
		tokens.AssertNotCalled(t, "ListNotifiableDeviceTokens", mock.Anything)
	})

	t.Run("token lookup failure is retried", func(t *testing.T) {
		tokens := new(TokensMock)
		tokens.On("ListNotifiableDeviceTokens", mock.Anything).
			Return(nil, errors.New("storage down")).Once()

		svc := New(tokens, new(ProviderMock), newNoopLogger())
		err := svc.HandleMovieCreated([]byte(`{"movie_id":7,"title":"Heat"}`))

		assert.Error(t, err)
	})

	t.Run("no devices", func(t *testing.T) {
		tokens := new(TokensMock)
		provider := new(ProviderMock)
		tokens.On("ListNotifiableDeviceTokens", mock.Anything).Return([]string{}, nil).Once()

		svc := New(tokens, provider, newNoopLogger())
		err := svc.HandleMovieCreated([]byte(`{"movie_id":7,"title":"Heat"}`))

		assert.NoError(t, err)
		provider.AssertNotCalled(t, "SendNotification",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
