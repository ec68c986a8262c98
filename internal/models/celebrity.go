package models

import (
	"fmt"
	"time"
)

// CelebrityRole описывает амплуа знаменитости.
type CelebrityRole string

const (
	// CelebrityActor — актёр.
	CelebrityActor CelebrityRole = "actor"
	// CelebrityDirector — режиссёр.
	CelebrityDirector CelebrityRole = "director"
	// CelebrityWriter — сценарист.
	CelebrityWriter CelebrityRole = "writer"
)

// ParseCelebrityRole преобразует строку в CelebrityRole.
func ParseCelebrityRole(s string) (CelebrityRole, error) {
	switch CelebrityRole(s) {
	case CelebrityActor:
		return CelebrityActor, nil
	case CelebrityDirector:
		return CelebrityDirector, nil
	case CelebrityWriter:
		return CelebrityWriter, nil
	}
	return "", fmt.Errorf("unknown celebrity role: %q", s)
}

// Celebrity представляет знаменитость каталога.
// Связь с фильмами — многие-ко-многим через celebrity_movies,
// не более одной связи на пару (знаменитость, фильм).
type Celebrity struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	BirthDate   time.Time     `json:"birth_date"`
	Nationality string        `json:"nationality"`
	Biography   string        `json:"biography"`
	Role        CelebrityRole `json:"role"`
	ImageURL    *string       `json:"image_url,omitempty"`
	BannerURL   *string       `json:"banner_url,omitempty"`
}

// Age возвращает полный возраст на текущую дату.
func (c Celebrity) Age() int {
	now := time.Now()
	age := now.Year() - c.BirthDate.Year()
	anniversary := c.BirthDate.AddDate(age, 0, 0)
	if now.Before(anniversary) {
		age--
	}
	return age
}

// DummyCelebrity используется для приёма данных знаменитости из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся вручную.
type DummyCelebrity struct {
	Name           string  `json:"name" validate:"required"`
	BirthDate      string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Nationality    string  `json:"nationality" validate:"required"`
	Biography      string  `json:"biography" validate:"required,max=1000"`
	Role           string  `json:"role" validate:"required,oneof=actor director writer"`
	ImageURL       *string `json:"image_url"`
	BannerURL      *string `json:"banner_url"`
	MovieIDs       []int64 `json:"movie_ids"`
	RemoveMovieIDs []int64 `json:"remove_movie_ids"`
}
