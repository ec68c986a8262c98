package celebrity

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCelebrity(ctx context.Context, celebrity models.Celebrity) (int64, error) {
	args := m.Called(ctx, celebrity)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ReadCelebrity(ctx context.Context, id int64) (*models.Celebrity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Celebrity), args.Error(1)
}
func (m *RepoMock) UpdateCelebrity(ctx context.Context, celebrity models.Celebrity, id int64) (int, error) {
	args := m.Called(ctx, celebrity, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveCelebrity(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCelebrities(ctx context.Context, name string, limit, offset int) ([]*models.Celebrity, error) {
	args := m.Called(ctx, name, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Celebrity), args.Error(1)
}
func (m *RepoMock) CountCelebrities(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCelebrityMovieIDs(ctx context.Context, celebrityID int64) ([]int64, error) {
	args := m.Called(ctx, celebrityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
func (m *RepoMock) AddCelebrityMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error {
	return m.Called(ctx, celebrityID, movieIDs).Error(0)
}
func (m *RepoMock) RemoveCelebrityMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error {
	return m.Called(ctx, celebrityID, movieIDs).Error(0)
}
func (m *RepoMock) ExistingMovieIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validDTO() models.DummyCelebrity {
	return models.DummyCelebrity{
		Name:        "Al Pacino",
		BirthDate:   "1940-04-25",
		Nationality: "American",
		Biography:   "Actor.",
		Role:        "actor",
	}
}

func TestCreate(t *testing.T) {
	t.Run("without movie links", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateCelebrity", mock.Anything, mock.MatchedBy(func(c models.Celebrity) bool {
			return c.Name == "Al Pacino" && c.Role == models.CelebrityActor &&
				c.BirthDate.Equal(time.Date(1940, 4, 25, 0, 0, 0, 0, time.UTC))
		})).Return(int64(3), nil).Once()

		svc := New(repo, newNoopLogger())
		id, err := svc.Create(context.Background(), validDTO())

		require.NoError(t, err)
		assert.Equal(t, int64(3), id)
		repo.AssertExpectations(t)
	})

	t.Run("with movie links", func(t *testing.T) {
		dto := validDTO()
		dto.MovieIDs = []int64{1, 2}

		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1, 2}).Return([]int64{1, 2}, nil).Once()
		repo.On("CreateCelebrity", mock.Anything, mock.Anything).Return(int64(3), nil).Once()
		repo.On("AddCelebrityMovies", mock.Anything, int64(3), []int64{1, 2}).Return(nil).Once()

		svc := New(repo, newNoopLogger())
		_, err := svc.Create(context.Background(), dto)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown movie id rejects whole request", func(t *testing.T) {
		dto := validDTO()
		dto.MovieIDs = []int64{1, 99, 100}

		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1, 99, 100}).Return([]int64{1}, nil).Once()

		svc := New(repo, newNoopLogger())
		_, err := svc.Create(context.Background(), dto)

		var unknownErr *UnknownMovieIDsError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, []int64{99, 100}, unknownErr.MovieIDs)
		repo.AssertNotCalled(t, "CreateCelebrity", mock.Anything, mock.Anything)
	})

	t.Run("invalid birth date", func(t *testing.T) {
		dto := validDTO()
		dto.BirthDate = "25-04-1940"

		svc := New(new(RepoMock), newNoopLogger())
		_, err := svc.Create(context.Background(), dto)

		assert.Error(t, err)
	})
}

func TestAssociateMovies(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{4, 5}).Return([]int64{4, 5}, nil).Once()
		repo.On("ListCelebrityMovieIDs", mock.Anything, int64(3)).Return([]int64{1}, nil).Once()
		repo.On("AddCelebrityMovies", mock.Anything, int64(3), []int64{4, 5}).Return(nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.AssociateMovies(context.Background(), 3, []int64{4, 5})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("already linked ids enumerated", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1, 4}).Return([]int64{1, 4}, nil).Once()
		repo.On("ListCelebrityMovieIDs", mock.Anything, int64(3)).Return([]int64{1, 2}, nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.AssociateMovies(context.Background(), 3, []int64{1, 4})

		var linkedErr *AlreadyLinkedError
		require.ErrorAs(t, err, &linkedErr)
		assert.Equal(t, []int64{1}, linkedErr.MovieIDs)
		repo.AssertNotCalled(t, "AddCelebrityMovies", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown ids enumerated before link check", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{7, 8}).Return([]int64{7}, nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.AssociateMovies(context.Background(), 3, []int64{7, 8})

		var unknownErr *UnknownMovieIDsError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, []int64{8}, unknownErr.MovieIDs)
	})
}

func TestDissociateMovies(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1, 2}).Return([]int64{1, 2}, nil).Once()
		repo.On("ListCelebrityMovieIDs", mock.Anything, int64(3)).Return([]int64{1, 2, 4}, nil).Once()
		repo.On("RemoveCelebrityMovies", mock.Anything, int64(3), []int64{1, 2}).Return(nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.DissociateMovies(context.Background(), 3, []int64{1, 2})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown ids enumerated", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1, 7}).Return([]int64{1}, nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.DissociateMovies(context.Background(), 3, []int64{1, 7})

		var unknownErr *UnknownMovieIDsError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, []int64{7}, unknownErr.MovieIDs)
		repo.AssertNotCalled(t, "RemoveCelebrityMovies", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not linked ids enumerated", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1, 5}).Return([]int64{1, 5}, nil).Once()
		repo.On("ListCelebrityMovieIDs", mock.Anything, int64(3)).Return([]int64{1}, nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.DissociateMovies(context.Background(), 3, []int64{1, 5})

		var notLinkedErr *NotLinkedError
		require.ErrorAs(t, err, &notLinkedErr)
		assert.Equal(t, []int64{5}, notLinkedErr.MovieIDs)
		repo.AssertNotCalled(t, "RemoveCelebrityMovies", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("missing celebrity", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdateCelebrity", mock.Anything, mock.Anything, int64(99)).Return(0, nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.Update(context.Background(), 99, validDTO())

		assert.ErrorIs(t, err, repository.ErrCelebrityNotFound)
	})

	t.Run("applies adds and removals", func(t *testing.T) {
		dto := validDTO()
		dto.MovieIDs = []int64{4}
		dto.RemoveMovieIDs = []int64{1}

		repo := new(RepoMock)
		repo.On("UpdateCelebrity", mock.Anything, mock.Anything, int64(3)).Return(1, nil).Once()
		repo.On("ExistingMovieIDs", mock.Anything, []int64{4}).Return([]int64{4}, nil).Once()
		repo.On("ExistingMovieIDs", mock.Anything, []int64{1}).Return([]int64{1}, nil).Once()
		repo.On("ListCelebrityMovieIDs", mock.Anything, int64(3)).Return([]int64{1}, nil).Twice()
		repo.On("AddCelebrityMovies", mock.Anything, int64(3), []int64{4}).Return(nil).Once()
		repo.On("RemoveCelebrityMovies", mock.Anything, int64(3), []int64{1}).Return(nil).Once()

		svc := New(repo, newNoopLogger())
		err := svc.Update(context.Background(), 3, dto)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestRead(t *testing.T) {
	t.Run("returns celebrity with linked movies", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ReadCelebrity", mock.Anything, int64(3)).
			Return(&models.Celebrity{ID: 3, Name: "Al Pacino"}, nil).Once()
		repo.On("ListCelebrityMovieIDs", mock.Anything, int64(3)).Return([]int64{1, 2}, nil).Once()

		svc := New(repo, newNoopLogger())
		celebrity, movieIDs, err := svc.Read(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "Al Pacino", celebrity.Name)
		assert.Equal(t, []int64{1, 2}, movieIDs)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ReadCelebrity", mock.Anything, int64(99)).
			Return(nil, repository.ErrCelebrityNotFound).Once()

		svc := New(repo, newNoopLogger())
		_, _, err := svc.Read(context.Background(), 99)

		assert.ErrorIs(t, err, repository.ErrCelebrityNotFound)
	})
}

func TestList(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountCelebrities", mock.Anything, "pac").Return(1, nil).Once()
	repo.On("ListCelebrities", mock.Anything, "pac", 10, 0).
		Return([]*models.Celebrity{{ID: 3, Name: "Al Pacino"}}, nil).Once()

	svc := New(repo, newNoopLogger())
	res, err := svc.List(context.Background(), "pac", 1, 10)

	require.NoError(t, err)
	require.Len(t, res.Celebrities, 1)
	assert.Equal(t, 1, res.Pagination.TotalCount)
}

func TestAge(t *testing.T) {
	c := models.Celebrity{BirthDate: time.Now().AddDate(-30, 0, 1)}
	assert.Equal(t, 29, c.Age())

	c = models.Celebrity{BirthDate: time.Now().AddDate(-30, 0, -1)}
	assert.Equal(t, 30, c.Age())
}
