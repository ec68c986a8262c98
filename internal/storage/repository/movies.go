package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

const movieColumns = `id, title, genre, release_year, rating, director, duration,
				description, main_lead, streaming_platform, premium, poster_url, banner_url`

// CreateMovie вставляет новый фильм и возвращает его ID.
func (s *Storage) CreateMovie(ctx context.Context, movie models.Movie) (int64, error) {
	const op = "storage.CreateMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO movies (title, genre, release_year, rating, director, duration,
			      description, main_lead, streaming_platform, premium, poster_url, banner_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		movie.Title, movie.Genre, movie.ReleaseYear, movie.Rating, movie.Director, movie.Duration,
		movie.Description, movie.MainLead, movie.StreamingPlatform, movie.Premium,
		movie.PosterURL, movie.BannerURL).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMovie возвращает фильм по его ID.
func (s *Storage) ReadMovie(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "storage.ReadMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Movie
	err := row.Scan(&result.ID, &result.Title, &result.Genre, &result.ReleaseYear, &result.Rating,
		&result.Director, &result.Duration, &result.Description, &result.MainLead,
		&result.StreamingPlatform, &result.Premium, &result.PosterURL, &result.BannerURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateMovie обновляет данные фильма по его ID и возвращает количество изменённых строк.
func (s *Storage) UpdateMovie(ctx context.Context, movie models.Movie, id int64) (int, error) {
	const op = "storage.UpdateMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE movies
			  SET title = $1, genre = $2, release_year = $3, rating = $4, director = $5,
			      duration = $6, description = $7, main_lead = $8, streaming_platform = $9,
			      premium = $10, poster_url = $11, banner_url = $12
			  WHERE id = $13`
	result, err := s.DB.ExecContext(ctx, query,
		movie.Title, movie.Genre, movie.ReleaseYear, movie.Rating, movie.Director, movie.Duration,
		movie.Description, movie.MainLead, movie.StreamingPlatform, movie.Premium,
		movie.PosterURL, movie.BannerURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMovie удаляет фильм по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveMovie(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM movies WHERE id = $1`
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

// ListMovies возвращает страницу фильмов по фильтру. Поле сортировки
// подставляется в запрос только из фиксированного набора, проверенного
// вызывающей стороной.
func (s *Storage) ListMovies(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	const op = "storage.ListMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	orderBy := "id"
	switch filter.SortBy {
	case "rating":
		orderBy = "rating"
	case "release_year":
		orderBy = "release_year"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := `SELECT ` + movieColumns + `
			  FROM movies
			  WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR genre = $2)
			  ORDER BY ` + orderBy + ` ` + direction + `, id
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, filter.Title, filter.Genre, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Movie
	for rows.Next() {
		var item models.Movie
		if err := rows.Scan(&item.ID, &item.Title, &item.Genre, &item.ReleaseYear, &item.Rating,
			&item.Director, &item.Duration, &item.Description, &item.MainLead,
			&item.StreamingPlatform, &item.Premium, &item.PosterURL, &item.BannerURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountMovies подсчитывает количество фильмов, подходящих под фильтр.
func (s *Storage) CountMovies(ctx context.Context, filter models.MovieFilter) (int, error) {
	const op = "storage.CountMovies"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*) FROM movies
			  WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR genre = $2)`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, filter.Title, filter.Genre).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ExistingMovieIDs возвращает подмножество переданных ID, существующих в каталоге.
func (s *Storage) ExistingMovieIDs(ctx context.Context, ids []int64) ([]int64, error) {
	const op = "storage.ExistingMovieIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id FROM movies WHERE id = ANY($1)`
	rows, err := s.DB.QueryContext(ctx, query, ids)
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
