package models

// Movie представляет фильм каталога. Флаг Premium закрывает фильм
// для пользователей без premium-подписки.
type Movie struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Genre             string  `json:"genre"`
	ReleaseYear       int     `json:"release_year"`
	Rating            float64 `json:"rating"`
	Director          string  `json:"director"`
	Duration          int     `json:"duration"` // Длительность в минутах
	Description       string  `json:"description"`
	MainLead          string  `json:"main_lead"`
	StreamingPlatform string  `json:"streaming_platform"`
	Premium           bool    `json:"premium"`
	PosterURL         *string `json:"poster_url,omitempty"`
	BannerURL         *string `json:"banner_url,omitempty"`
}

// DummyMovie используется для приёма данных фильма из JSON-запроса,
// прежде чем конвертировать их в Movie.
type DummyMovie struct {
	Title             string  `json:"title" validate:"required"`
	Genre             string  `json:"genre" validate:"required"`
	ReleaseYear       int     `json:"release_year" validate:"required,gte=1888"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=10"`
	Director          string  `json:"director" validate:"required"`
	Duration          int     `json:"duration" validate:"required,gt=0"`
	Description       string  `json:"description"`
	MainLead          string  `json:"main_lead"`
	StreamingPlatform string  `json:"streaming_platform"`
	Premium           bool    `json:"premium"`
	PosterURL         *string `json:"poster_url"`
	BannerURL         *string `json:"banner_url"`
}

// MovieFilter описывает параметры выборки списка фильмов.
// SortBy уже проверен обработчиком по списку разрешённых полей.
type MovieFilter struct {
	Title    string // Поиск по подстроке названия
	Genre    string // Точный фильтр по жанру
	SortBy   string // Поле сортировки: rating или release_year, пустое — по id
	SortDesc bool
	Limit    int
	Offset   int
}

// Pagination описывает метаданные постраничной выдачи.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
	PerPage     int `json:"per_page"`
}
