package models

import "time"

// WatchlistEntry представляет запись вотчлиста: пара (пользователь, фильм),
// уникальная на пользователя. Запись живёт независимо от premium-флага фильма:
// при понижении подписки запись сохраняется, но выдача фильтрует её по
// текущей доступности.
type WatchlistEntry struct {
	ID        int64     `json:"id"`
	UserUID   string    `json:"user_uid"`
	MovieID   int64     `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AddWatchlistRequest используется для приёма запроса на добавление фильма в вотчлист.
type AddWatchlistRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}

// NewMovieEvent — сообщение о новом фильме, публикуемое в очередь уведомлений.
type NewMovieEvent struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
}
