// Package celebrity содержит бизнес-логику каталога знаменитостей и их связей
// с фильмами. Связи применяются по принципу «всё или ничего»: один
// невалидный идентификатор фильма отменяет весь запрос.
package celebrity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// UnknownMovieIDsError — в запросе есть идентификаторы несуществующих фильмов.
type UnknownMovieIDsError struct {
	MovieIDs []int64
}

func (e *UnknownMovieIDsError) Error() string {
	return fmt.Sprintf("movies do not exist: %v", e.MovieIDs)
}

// AlreadyLinkedError — фильмы уже связаны со знаменитостью.
type AlreadyLinkedError struct {
	MovieIDs []int64
}

func (e *AlreadyLinkedError) Error() string {
	return fmt.Sprintf("movies already linked: %v", e.MovieIDs)
}

// NotLinkedError — фильмы не связаны со знаменитостью, удалять нечего.
type NotLinkedError struct {
	MovieIDs []int64
}

func (e *NotLinkedError) Error() string {
	return fmt.Sprintf("movies are not linked: %v", e.MovieIDs)
}

// CelebrityRepository описывает контракт для работы со знаменитостями в базе данных.
type CelebrityRepository interface {
	CreateCelebrity(ctx context.Context, celebrity models.Celebrity) (int64, error)
	ReadCelebrity(ctx context.Context, id int64) (*models.Celebrity, error)
	UpdateCelebrity(ctx context.Context, celebrity models.Celebrity, id int64) (int, error)
	RemoveCelebrity(ctx context.Context, id int64) (int, error)
	ListCelebrities(ctx context.Context, name string, limit, offset int) ([]*models.Celebrity, error)
	CountCelebrities(ctx context.Context, name string) (int, error)
	ListCelebrityMovieIDs(ctx context.Context, celebrityID int64) ([]int64, error)
	AddCelebrityMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error
	RemoveCelebrityMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error
	ExistingMovieIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// ListResult — страница знаменитостей с метаданными пагинации.
type ListResult struct {
	Celebrities []*models.Celebrity `json:"celebrities"`
	Pagination  models.Pagination   `json:"pagination"`
}

// Service реализует операции каталога знаменитостей.
type Service struct {
	repo CelebrityRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo CelebrityRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func toCelebrity(dto models.DummyCelebrity) (models.Celebrity, error) {
	birthDate, err := time.Parse("2006-01-02", dto.BirthDate)
	if err != nil {
		return models.Celebrity{}, fmt.Errorf("invalid birth_date: %w", err)
	}
	role, err := models.ParseCelebrityRole(dto.Role)
	if err != nil {
		return models.Celebrity{}, err
	}
	return models.Celebrity{
		Name:        dto.Name,
		BirthDate:   birthDate,
		Nationality: dto.Nationality,
		Biography:   dto.Biography,
		Role:        role,
		ImageURL:    dto.ImageURL,
		BannerURL:   dto.BannerURL,
	}, nil
}

// Create добавляет знаменитость и, если заданы movie_ids, связывает её
// с фильмами. Идентификаторы проверяются до создания записи: один
// несуществующий фильм отклоняет запрос целиком.
func (s *Service) Create(ctx context.Context, dto models.DummyCelebrity) (int64, error) {
	const op = "celebrity.Create"

	celebrity, err := toCelebrity(dto)
	if err != nil {
		return 0, err
	}
	if len(dto.MovieIDs) > 0 {
		existing, err := s.repo.ExistingMovieIDs(ctx, dto.MovieIDs)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if unknown := missingIDs(dto.MovieIDs, existing); len(unknown) > 0 {
			return 0, &UnknownMovieIDsError{MovieIDs: unknown}
		}
	}
	id, err := s.repo.CreateCelebrity(ctx, celebrity)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(dto.MovieIDs) > 0 {
		if err := s.repo.AddCelebrityMovies(ctx, id, dto.MovieIDs); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	s.log.Info("created celebrity", slog.Int64("celebrity_id", id), slog.String("name", dto.Name))
	return id, nil
}

// Read возвращает знаменитость вместе со списком связанных фильмов.
func (s *Service) Read(ctx context.Context, id int64) (*models.Celebrity, []int64, error) {
	const op = "celebrity.Read"

	celebrity, err := s.repo.ReadCelebrity(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	movieIDs, err := s.repo.ListCelebrityMovieIDs(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return celebrity, movieIDs, nil
}

// Update обновляет знаменитость и применяет изменения связей:
// movie_ids добавляются, remove_movie_ids удаляются. Оба списка проходят
// полную валидацию до применения хоть одного изменения.
func (s *Service) Update(ctx context.Context, id int64, dto models.DummyCelebrity) error {
	const op = "celebrity.Update"

	celebrity, err := toCelebrity(dto)
	if err != nil {
		return err
	}
	rowsAffected, err := s.repo.UpdateCelebrity(ctx, celebrity, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return repository.ErrCelebrityNotFound
	}
	if len(dto.MovieIDs) > 0 {
		if err := s.AssociateMovies(ctx, id, dto.MovieIDs); err != nil {
			return err
		}
	}
	if len(dto.RemoveMovieIDs) > 0 {
		if err := s.DissociateMovies(ctx, id, dto.RemoveMovieIDs); err != nil {
			return err
		}
	}
	return nil
}

// Remove удаляет знаменитость вместе со связями.
func (s *Service) Remove(ctx context.Context, id int64) error {
	const op = "celebrity.Remove"

	rowsAffected, err := s.repo.RemoveCelebrity(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return repository.ErrCelebrityNotFound
	}
	return nil
}

// List возвращает страницу знаменитостей с фильтром по подстроке имени.
func (s *Service) List(ctx context.Context, name string, page, perPage int) (*ListResult, error) {
	const op = "celebrity.List"

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	total, err := s.repo.CountCelebrities(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	celebrities, err := s.repo.ListCelebrities(ctx, name, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ListResult{
		Celebrities: celebrities,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  (total + perPage - 1) / perPage,
			TotalCount:  total,
			PerPage:     perPage,
		},
	}, nil
}

// AssociateMovies связывает знаменитость с фильмами. Проверяет, что все
// идентификаторы существуют и ещё не связаны; при любом нарушении запрос
// отклоняется целиком с перечислением проблемных идентификаторов.
func (s *Service) AssociateMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error {
	const op = "celebrity.AssociateMovies"

	existing, err := s.repo.ExistingMovieIDs(ctx, movieIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if unknown := missingIDs(movieIDs, existing); len(unknown) > 0 {
		return &UnknownMovieIDsError{MovieIDs: unknown}
	}

	linked, err := s.repo.ListCelebrityMovieIDs(ctx, celebrityID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if dup := intersectIDs(movieIDs, linked); len(dup) > 0 {
		return &AlreadyLinkedError{MovieIDs: dup}
	}

	if err := s.repo.AddCelebrityMovies(ctx, celebrityID, movieIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DissociateMovies разрывает связи знаменитости с фильмами. Несуществующие
// идентификаторы и идентификаторы вне текущих связей отклоняют запрос
// целиком, каждые со своим перечислением.
func (s *Service) DissociateMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error {
	const op = "celebrity.DissociateMovies"

	existing, err := s.repo.ExistingMovieIDs(ctx, movieIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if unknown := missingIDs(movieIDs, existing); len(unknown) > 0 {
		return &UnknownMovieIDsError{MovieIDs: unknown}
	}

	linked, err := s.repo.ListCelebrityMovieIDs(ctx, celebrityID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if notLinked := missingIDs(movieIDs, linked); len(notLinked) > 0 {
		return &NotLinkedError{MovieIDs: notLinked}
	}

	if err := s.repo.RemoveCelebrityMovies(ctx, celebrityID, movieIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// missingIDs возвращает элементы want, отсутствующие в have.
func missingIDs(want, have []int64) []int64 {
	set := make(map[int64]bool, len(have))
	for _, id := range have {
		set[id] = true
	}
	var missing []int64
	for _, id := range want {
		if !set[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// intersectIDs возвращает элементы want, присутствующие в have.
func intersectIDs(want, have []int64) []int64 {
	set := make(map[int64]bool, len(have))
	for _, id := range have {
		set[id] = true
	}
	var common []int64
	for _, id := range want {
		if set[id] {
			common = append(common, id)
		}
	}
	return common
}
