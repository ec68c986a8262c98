package add

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
	watchlistservice "github.com/magabrotheeeer/movie-explorer/internal/services/watchlist"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, userUID string, movieID int64) (int64, error) {
	args := m.Called(ctx, userUID, movieID)
	return args.Get(0).(int64), args.Error(1)
}

func TestAddHandler(t *testing.T) {
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
			name:    "successful add",
			body:    `{"movie_id":7}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "uid-1", int64(7)).Return(int64(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"watchlist_id":1`,
		},
		{
			name:           "unauthenticated",
			body:           `{"movie_id":7}`,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "movie not found",
			body:    `{"movie_id":99}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "uid-1", int64(99)).
					Return(int64(0), repository.ErrMovieNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"movie not found"`,
		},
		{
			name:    "premium movie without premium tier",
			body:    `{"movie_id":8}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "uid-1", int64(8)).
					Return(int64(0), watchlistservice.ErrPremiumRequired)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"Forbidden: Premium subscription required"`,
		},
		{
			name:    "duplicate entry",
			body:    `{"movie_id":7}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "uid-1", int64(7)).
					Return(int64(0), repository.ErrWatchlistDuplicate)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"movie already in watchlist"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/watchlists", strings.NewReader(tt.body))
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
