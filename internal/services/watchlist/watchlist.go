// Package watchlist содержит бизнес-логику личных списков просмотра.
// Запись остаётся в списке даже после потери доступа к фильму: выдача
// молча скрывает недоступное вместо ошибки.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// WatchlistRepository описывает контракт для работы со списками просмотра.
type WatchlistRepository interface {
	AddWatchlistEntry(ctx context.Context, userUID string, movieID int64) (int64, error)
	RemoveWatchlistEntry(ctx context.Context, userUID string, movieID int64) error
	ListWatchlistMovies(ctx context.Context, userUID string) ([]*models.Movie, error)
}

// MovieReader возвращает фильм по id.
type MovieReader interface {
	ReadMovie(ctx context.Context, id int64) (*models.Movie, error)
}

// AccessChecker проверяет доступность фильма пользователю.
type AccessChecker interface {
	CanView(ctx context.Context, userUID string, movie *models.Movie) (bool, error)
	FilterViewable(ctx context.Context, userUID string, movies []*models.Movie) ([]*models.Movie, error)
}

// ErrPremiumRequired — premium-фильм нельзя добавить без действующей
// premium-подписки.
var ErrPremiumRequired = errors.New("premium subscription required")

// Service реализует операции списка просмотра.
type Service struct {
	repo   WatchlistRepository
	movies MovieReader
	access AccessChecker
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo WatchlistRepository, movies MovieReader, access AccessChecker, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		movies: movies,
		access: access,
		log:    log,
	}
}

// Add добавляет фильм в список просмотра пользователя. Фильм должен
// существовать и быть доступным на текущем уровне подписки; повторное
// добавление возвращает ErrWatchlistDuplicate.
func (s *Service) Add(ctx context.Context, userUID string, movieID int64) (int64, error) {
	const op = "watchlist.Add"

	movie, err := s.movies.ReadMovie(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	ok, err := s.access.CanView(ctx, userUID, movie)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return 0, ErrPremiumRequired
	}

	id, err := s.repo.AddWatchlistEntry(ctx, userUID, movieID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("added movie to watchlist",
		slog.String("user_uid", userUID), slog.Int64("movie_id", movieID))
	return id, nil
}

// Remove убирает фильм из списка просмотра. Запись, которой нет,
// возвращает ErrWatchlistEntryNotFound. Доступность фильма не проверяется:
// убрать из списка можно и то, что уже недоступно.
func (s *Service) Remove(ctx context.Context, userUID string, movieID int64) error {
	const op = "watchlist.Remove"

	if err := s.repo.RemoveWatchlistEntry(ctx, userUID, movieID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает фильмы списка просмотра, доступные пользователю сейчас.
// Записи на недоступные premium-фильмы сохраняются в базе, но в выдачу
// не попадают.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Movie, error) {
	const op = "watchlist.List"

	movies, err := s.repo.ListWatchlistMovies(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	visible, err := s.access.FilterViewable(ctx, userUID, movies)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return visible, nil
}
