// Package movie содержит бизнес-логику каталога фильмов: CRUD с кэшированием
// горячих чтений в Redis и публикацией события о новом фильме в очередь
// уведомлений.
package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Ошибки сервиса фильмов.
var (
	// ErrInvalidSortField — поле сортировки вне списка разрешённых.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrPremiumRequired — premium-фильм недоступен на текущем уровне подписки.
	ErrPremiumRequired = errors.New("premium subscription required")
)

const cacheTTL = time.Hour

// Разрешённые поля сортировки списка фильмов. Значение попадает в ORDER BY
// только через этот список.
var allowedSortFields = map[string]bool{
	"rating":       true,
	"release_year": true,
}

// MovieRepository описывает контракт для работы с фильмами в базе данных.
type MovieRepository interface {
	CreateMovie(ctx context.Context, movie models.Movie) (int64, error)
	ReadMovie(ctx context.Context, id int64) (*models.Movie, error)
	UpdateMovie(ctx context.Context, movie models.Movie, id int64) (int, error)
	RemoveMovie(ctx context.Context, id int64) (int, error)
	ListMovies(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error)
	CountMovies(ctx context.Context, filter models.MovieFilter) (int, error)
}

// AccessChecker проверяет видимость фильма для пользователя.
type AccessChecker interface {
	CanView(ctx context.Context, userUID string, movie *models.Movie) (bool, error)
}

// Cache описывает контракт кэша для горячих чтений.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher отправляет событие о новом фильме в очередь уведомлений.
type EventPublisher interface {
	PublishMovieCreated(event models.NewMovieEvent) error
}

// ListResult — страница фильмов с метаданными пагинации.
type ListResult struct {
	Movies     []*models.Movie   `json:"movies"`
	Pagination models.Pagination `json:"pagination"`
}

// Service реализует операции каталога фильмов.
type Service struct {
	repo      MovieRepository
	access    AccessChecker
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo MovieRepository, access AccessChecker, cache Cache, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		access:    access,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("movie:%d", id)
}

func toMovie(dto models.DummyMovie) models.Movie {
	return models.Movie{
		Title:             dto.Title,
		Genre:             dto.Genre,
		ReleaseYear:       dto.ReleaseYear,
		Rating:            dto.Rating,
		Director:          dto.Director,
		Duration:          dto.Duration,
		Description:       dto.Description,
		MainLead:          dto.MainLead,
		StreamingPlatform: dto.StreamingPlatform,
		Premium:           dto.Premium,
		PosterURL:         dto.PosterURL,
		BannerURL:         dto.BannerURL,
	}
}

// Create добавляет фильм в каталог и публикует событие для рассылки
// push-уведомлений. Сбой публикации не отменяет создание: событие
// логируется и запрос завершается успешно.
func (s *Service) Create(ctx context.Context, dto models.DummyMovie) (int64, error) {
	const op = "movie.Create"

	id, err := s.repo.CreateMovie(ctx, toMovie(dto))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.publisher.PublishMovieCreated(models.NewMovieEvent{MovieID: id, Title: dto.Title}); err != nil {
		s.log.Error("failed to publish movie created event", sl.Err(err),
			slog.Int64("movie_id", id))
	}

	s.log.Info("created movie", slog.Int64("movie_id", id), slog.String("title", dto.Title))
	return id, nil
}

// Read возвращает фильм по id. Пустой userUID означает анонимный запрос.
// Premium-фильм без действующей premium-подписки возвращает ErrPremiumRequired.
func (s *Service) Read(ctx context.Context, id int64, userUID string) (*models.Movie, error) {
	const op = "movie.Read"

	var movie models.Movie
	found, err := s.cache.Get(cacheKey(id), &movie)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err), slog.Int64("movie_id", id))
	}
	if !found {
		m, err := s.repo.ReadMovie(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		movie = *m
		if err := s.cache.Set(cacheKey(id), movie, cacheTTL); err != nil {
			s.log.Warn("cache write failed", sl.Err(err), slog.Int64("movie_id", id))
		}
	}

	ok, err := s.access.CanView(ctx, userUID, &movie)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, ErrPremiumRequired
	}
	return &movie, nil
}

// Update обновляет фильм по id.
func (s *Service) Update(ctx context.Context, id int64, dto models.DummyMovie) error {
	const op = "movie.Update"

	rowsAffected, err := s.repo.UpdateMovie(ctx, toMovie(dto), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return repository.ErrMovieNotFound
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("cache invalidate failed", sl.Err(err), slog.Int64("movie_id", id))
	}
	return nil
}

// Remove удаляет фильм по id.
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "movie.Remove"

	rowsAffected, err := s.repo.RemoveMovie(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return repository.ErrMovieNotFound
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("cache invalidate failed", sl.Err(err), slog.Int64("movie_id", id))
	}
	return nil
}

// List возвращает страницу каталога. Поле сортировки проверяется по списку
// разрешённых; пустое значение сортирует по id. Пустой результат при
// TotalCount == 0 означает «записей нет вообще», при TotalCount > 0 —
// исчерпанную страницу.
func (s *Service) List(ctx context.Context, filter models.MovieFilter, page, perPage int) (*ListResult, error) {
	const op = "movie.List"

	if filter.SortBy != "" && !allowedSortFields[filter.SortBy] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, filter.SortBy)
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage

	total, err := s.repo.CountMovies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	movies, err := s.repo.ListMovies(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	totalPages := (total + perPage - 1) / perPage
	return &ListResult{
		Movies: movies,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			PerPage:     perPage,
		},
	}, nil
}
