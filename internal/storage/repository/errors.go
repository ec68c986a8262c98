package repository

import "errors"

// Ошибки хранилища. Сервисы проверяют их через errors.Is и
// транслируют в ответы API.
var (
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists — пользователь с таким именем или почтой уже существует.
	ErrUserExists = errors.New("user already exists")
	// ErrSubscriptionNotFound — подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrMovieNotFound — фильм не найден.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrCelebrityNotFound — знаменитость не найдена.
	ErrCelebrityNotFound = errors.New("celebrity not found")
	// ErrWatchlistEntryNotFound — записи о фильме нет в вотчлисте пользователя.
	ErrWatchlistEntryNotFound = errors.New("watchlist entry not found")
	// ErrWatchlistDuplicate — фильм уже есть в вотчлисте пользователя.
	ErrWatchlistDuplicate = errors.New("movie already in watchlist")
)
