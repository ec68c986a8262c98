package list

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

	"github.com/magabrotheeeer/movie-explorer/internal/models"
	movieservice "github.com/magabrotheeeer/movie-explorer/internal/services/movie"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, filter models.MovieFilter, page, perPage int) (*movieservice.ListResult, error) {
	args := m.Called(ctx, filter, page, perPage)
	if res := args.Get(0); res != nil {
		return res.(*movieservice.ListResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "page with movies",
			query: "?sort_by=rating&order=desc&page=2&per_page=5",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.MovieFilter{SortBy: "rating", SortDesc: true}, 2, 5).
					Return(&movieservice.ListResult{
						Movies:     []*models.Movie{{ID: 11, Title: "Heat"}},
						Pagination: models.Pagination{CurrentPage: 2, TotalPages: 3, TotalCount: 11, PerPage: 5},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_count":11`,
		},
		{
			name:  "sort direction defaults to descending",
			query: "?sort_by=rating",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.MovieFilter{SortBy: "rating", SortDesc: true}, 0, 0).
					Return(&movieservice.ListResult{
						Movies:     []*models.Movie{{ID: 1, Title: "Heat"}},
						Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 1, PerPage: 10},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Heat"`,
		},
		{
			name:  "explicit ascending order",
			query: "?sort_by=rating&order=asc",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.MovieFilter{SortBy: "rating", SortDesc: false}, 0, 0).
					Return(&movieservice.ListResult{
						Movies:     []*models.Movie{{ID: 1, Title: "Heat"}},
						Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 1, PerPage: 10},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Heat"`,
		},
		{
			name:  "unknown sort field",
			query: "?sort_by=title",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.MovieFilter{SortBy: "title", SortDesc: true}, 0, 0).
					Return(nil, fmt.Errorf("%w: %q", movieservice.ErrInvalidSortField, "title"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid sort field`,
		},
		{
			name:  "empty catalog",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.MovieFilter{}, 0, 0).
					Return(&movieservice.ListResult{
						Movies:     []*models.Movie{},
						Pagination: models.Pagination{CurrentPage: 1, PerPage: 10},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"No movies found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/movies"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
