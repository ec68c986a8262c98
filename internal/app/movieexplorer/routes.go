// Package movieexplorer предоставляет маршруты для основного приложения.
package movieexplorer

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/auth/register"
	celebritycreate "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/celebrity/create"
	celebritylist "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/celebrity/list"
	celebrityread "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/celebrity/read"
	celebrityremove "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/celebrity/remove"
	celebrityupdate "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/celebrity/update"
	moviecreate "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/movie/create"
	movielist "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/movie/list"
	movieread "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/movie/read"
	movieremove "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/movie/remove"
	movieupdate "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/movie/update"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/subscription/checkout"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/subscription/success"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/user/current"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/user/devicetoken"
	"github.com/magabrotheeeer/movie-explorer/internal/http/handlers/user/togglenotifications"
	watchlistadd "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/watchlist/add"
	watchlistlist "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/watchlist/list"
	watchlistremove "github.com/magabrotheeeer/movie-explorer/internal/http/handlers/watchlist/remove"
	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/movie-explorer/internal/services/auth"
	celebrityservice "github.com/magabrotheeeer/movie-explorer/internal/services/celebrity"
	movieservice "github.com/magabrotheeeer/movie-explorer/internal/services/movie"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
	watchlistservice "github.com/magabrotheeeer/movie-explorer/internal/services/watchlist"
)

// Services группирует бизнес-сервисы, которые используют маршруты приложения.
type Services struct {
	Auth         *authservice.Service
	Subscription *subscriptionservice.Service
	Movie        *movieservice.Service
	Celebrity    *celebrityservice.Service
	Watchlist    *watchlistservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, rate.Limit(10), 20))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Redirect-адреса платёжного шлюза: браузерный переход не несёт
		// Authorization, пользователь определяется по данным сессии шлюза
		r.Get("/subscriptions/success", success.New(logger, s.Subscription).ServeHTTP)
		r.Get("/subscriptions/cancel", cancel.New(logger).ServeHTTP)

		// Каталог доступен и анонимно: токен учитывается, если передан
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(s.Auth, logger))
			r.Get("/movies", movielist.New(logger, s.Movie).ServeHTTP)
			r.Get("/movies/{id}", movieread.New(logger, s.Movie).ServeHTTP)
			r.Get("/celebrities", celebritylist.New(logger, s.Celebrity).ServeHTTP)
			r.Get("/celebrities/{id}", celebrityread.New(logger, s.Celebrity).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))

			r.Get("/users/current", current.New(logger, s.Auth).ServeHTTP)
			r.Put("/users/device-token", devicetoken.New(logger, s.Auth).ServeHTTP)
			r.Put("/users/toggle-notifications", togglenotifications.New(logger, s.Auth).ServeHTTP)

			r.Post("/watchlists", watchlistadd.New(logger, s.Watchlist).ServeHTTP)
			r.Get("/watchlists", watchlistlist.New(logger, s.Watchlist).ServeHTTP)
			r.Delete("/watchlists/{movie_id}", watchlistremove.New(logger, s.Watchlist).ServeHTTP)

			r.Post("/subscriptions/create", checkout.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/status", status.New(logger, s.Subscription).ServeHTTP)

			// Управление каталогом доступно только супервизору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireSupervisor(logger))
				r.Post("/movies", moviecreate.New(logger, s.Movie).ServeHTTP)
				r.Put("/movies/{id}", movieupdate.New(logger, s.Movie).ServeHTTP)
				r.Delete("/movies/{id}", movieremove.New(logger, s.Movie).ServeHTTP)
				r.Post("/celebrities", celebritycreate.New(logger, s.Celebrity).ServeHTTP)
				r.Put("/celebrities/{id}", celebrityupdate.New(logger, s.Celebrity).ServeHTTP)
				r.Delete("/celebrities/{id}", celebrityremove.New(logger, s.Celebrity).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
