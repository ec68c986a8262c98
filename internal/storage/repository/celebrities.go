package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

const celebrityColumns = `id, name, birth_date, nationality, biography, role, image_url, banner_url`

// CreateCelebrity вставляет новую знаменитость и возвращает её ID.
func (s *Storage) CreateCelebrity(ctx context.Context, celebrity models.Celebrity) (int64, error) {
	const op = "storage.CreateCelebrity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO celebrities (name, birth_date, nationality, biography, role, image_url, banner_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		celebrity.Name, celebrity.BirthDate, celebrity.Nationality, celebrity.Biography,
		string(celebrity.Role), celebrity.ImageURL, celebrity.BannerURL).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCelebrity возвращает знаменитость по её ID.
func (s *Storage) ReadCelebrity(ctx context.Context, id int64) (*models.Celebrity, error) {
	const op = "storage.ReadCelebrity"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + celebrityColumns + ` FROM celebrities WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Celebrity
	var role string
	err := row.Scan(&result.ID, &result.Name, &result.BirthDate, &result.Nationality,
		&result.Biography, &role, &result.ImageURL, &result.BannerURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrCelebrityNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Role, err = models.ParseCelebrityRole(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateCelebrity обновляет данные знаменитости и возвращает количество изменённых строк.
func (s *Storage) UpdateCelebrity(ctx context.Context, celebrity models.Celebrity, id int64) (int, error) {
	const op = "storage.UpdateCelebrity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE celebrities
			  SET name = $1, birth_date = $2, nationality = $3, biography = $4, role = $5,
			      image_url = $6, banner_url = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		celebrity.Name, celebrity.BirthDate, celebrity.Nationality, celebrity.Biography,
		string(celebrity.Role), celebrity.ImageURL, celebrity.BannerURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCelebrity удаляет знаменитость по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCelebrity(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveCelebrity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM celebrities WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCelebrities возвращает страницу знаменитостей с фильтром по имени.
func (s *Storage) ListCelebrities(ctx context.Context, name string, limit, offset int) ([]*models.Celebrity, error) {
	const op = "storage.ListCelebrities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + celebrityColumns + `
			  FROM celebrities
			  WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, name, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Celebrity
	for rows.Next() {
		var item models.Celebrity
		var role string
		if err := rows.Scan(&item.ID, &item.Name, &item.BirthDate, &item.Nationality,
			&item.Biography, &role, &item.ImageURL, &item.BannerURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Role, err = models.ParseCelebrityRole(role)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountCelebrities подсчитывает количество знаменитостей, подходящих под фильтр по имени.
func (s *Storage) CountCelebrities(ctx context.Context, name string) (int, error) {
	const op = "storage.CountCelebrities"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*) FROM celebrities
			  WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListCelebrityMovieIDs возвращает ID фильмов, связанных со знаменитостью.
func (s *Storage) ListCelebrityMovieIDs(ctx context.Context, celebrityID int64) ([]int64, error) {
	const op = "storage.ListCelebrityMovieIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT movie_id FROM celebrity_movies WHERE celebrity_id = $1 ORDER BY movie_id`
	rows, err := s.DB.QueryContext(ctx, query, celebrityID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddCelebrityMovies связывает знаменитость с фильмами одной транзакцией:
// либо появляются все связи, либо ни одной.
func (s *Storage) AddCelebrityMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error {
	const op = "storage.AddCelebrityMovies"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO celebrity_movies (celebrity_id, movie_id) VALUES ($1, $2)`
	for _, movieID := range movieIDs {
		if _, err := tx.ExecContext(ctx, query, celebrityID, movieID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveCelebrityMovies удаляет связи знаменитости с фильмами одной транзакцией.
func (s *Storage) RemoveCelebrityMovies(ctx context.Context, celebrityID int64, movieIDs []int64) error {
	const op = "storage.RemoveCelebrityMovies"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM celebrity_movies WHERE celebrity_id = $1 AND movie_id = ANY($2)`
	if _, err := s.DB.ExecContext(ctx, query, celebrityID, movieIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
