package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// AddWatchlistEntry добавляет фильм в вотчлист пользователя.
func (s *Storage) AddWatchlistEntry(ctx context.Context, userUID string, movieID int64) (int64, error) {
	const op = "storage.AddWatchlistEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO watchlists (user_uid, movie_id) VALUES ($1, $2) RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query, userUID, movieID).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrWatchlistDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RemoveWatchlistEntry удаляет фильм из вотчлиста пользователя.
func (s *Storage) RemoveWatchlistEntry(ctx context.Context, userUID string, movieID int64) error {
	const op = "storage.RemoveWatchlistEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM watchlists WHERE user_uid = $1 AND movie_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, movieID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrWatchlistEntryNotFound)
	}
	return nil
}

// ListWatchlistMovies возвращает фильмы из вотчлиста пользователя
// в порядке добавления.
func (s *Storage) ListWatchlistMovies(ctx context.Context, userUID string) ([]*models.Movie, error) {
	const op = "storage.ListWatchlistMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT m.id, m.title, m.genre, m.release_year, m.rating, m.director, m.duration,
			      m.description, m.main_lead, m.streaming_platform, m.premium, m.poster_url, m.banner_url
			  FROM watchlists w
			  JOIN movies m ON m.id = w.movie_id
			  WHERE w.user_uid = $1
			  ORDER BY w.created_at, w.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
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
