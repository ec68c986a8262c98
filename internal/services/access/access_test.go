package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

type TiersMock struct{ mock.Mock }

func (m *TiersMock) CurrentTier(ctx context.Context, userUID string) (models.PlanType, error) {
	args := m.Called(ctx, userUID)
	return args.Get(0).(models.PlanType), args.Error(1)
}

func TestCanView(t *testing.T) {
	regular := &models.Movie{ID: 1, Title: "Heat", Premium: false}
	premium := &models.Movie{ID: 2, Title: "Dune", Premium: true}

	tests := []struct {
		name       string
		userUID    string
		movie      *models.Movie
		setupMocks func(m *TiersMock)
		want       bool
	}{
		{
			name:       "regular movie visible to anonymous",
			userUID:    "",
			movie:      regular,
			setupMocks: func(_ *TiersMock) {},
			want:       true,
		},
		{
			name:       "premium movie hidden from anonymous",
			userUID:    "",
			movie:      premium,
			setupMocks: func(_ *TiersMock) {},
			want:       false,
		},
		{
			name:    "premium movie hidden from basic tier",
			userUID: "uid-1",
			movie:   premium,
			setupMocks: func(m *TiersMock) {
				m.On("CurrentTier", mock.Anything, "uid-1").Return(models.PlanBasic, nil).Once()
			},
			want: false,
		},
		{
			name:    "premium movie visible to premium tier",
			userUID: "uid-1",
			movie:   premium,
			setupMocks: func(m *TiersMock) {
				m.On("CurrentTier", mock.Anything, "uid-1").Return(models.PlanPremium, nil).Once()
			},
			want: true,
		},
		{
			name:    "regular movie skips tier lookup",
			userUID: "uid-1",
			movie:   regular,
			setupMocks: func(_ *TiersMock) {
				// tier resolver must not be called for non-premium movies
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := new(TiersMock)
			tt.setupMocks(tiers)

			svc := New(tiers)
			got, err := svc.CanView(context.Background(), tt.userUID, tt.movie)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			tiers.AssertExpectations(t)
		})
	}
}

func TestCanView_TierError(t *testing.T) {
	tiers := new(TiersMock)
	tiers.On("CurrentTier", mock.Anything, "uid-1").
		Return(models.PlanFree, errors.New("storage down")).Once()

	svc := New(tiers)
	_, err := svc.CanView(context.Background(), "uid-1", &models.Movie{Premium: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage down")
}

func TestFilterViewable(t *testing.T) {
	movies := []*models.Movie{
		{ID: 1, Premium: false},
		{ID: 2, Premium: true},
		{ID: 3, Premium: false},
	}

	t.Run("anonymous sees only regular", func(t *testing.T) {
		svc := New(new(TiersMock))
		got, err := svc.FilterViewable(context.Background(), "", movies)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("premium sees everything", func(t *testing.T) {
		tiers := new(TiersMock)
		tiers.On("CurrentTier", mock.Anything, "uid-1").Return(models.PlanPremium, nil).Once()

		svc := New(tiers)
		got, err := svc.FilterViewable(context.Background(), "uid-1", movies)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		tiers.AssertExpectations(t)
	})
}
