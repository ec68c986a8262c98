// Package movieexplorer собирает и запускает основное HTTP-приложение каталога фильмов.
package movieexplorer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/movie-explorer/internal/cache"
	"github.com/magabrotheeeer/movie-explorer/internal/config"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/jwt"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/movie-explorer/internal/migrations"
	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	accessservice "github.com/magabrotheeeer/movie-explorer/internal/services/access"
	authservice "github.com/magabrotheeeer/movie-explorer/internal/services/auth"
	celebrityservice "github.com/magabrotheeeer/movie-explorer/internal/services/celebrity"
	movieservice "github.com/magabrotheeeer/movie-explorer/internal/services/movie"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
	watchlistservice "github.com/magabrotheeeer/movie-explorer/internal/services/watchlist"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создаёт приложение: подключает хранилище, кэш, брокер очередей,
// платёжный шлюз, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.ConnectRetries, cfg.RabbitMQ.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewMoviePublisher(ch)

	providerClient := paymentprovider.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.APIURL, cfg.Stripe.TimeoutStripe)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(db, jwtMaker)
	subscriptionService := subscriptionservice.New(db, db, providerClient, cfg.Stripe, logger)
	accessService := accessservice.New(subscriptionService)
	movieService := movieservice.New(db, accessService, cacheRedis, publisher, logger)
	celebrityService := celebrityservice.New(db, logger)
	watchlistService := watchlistservice.New(db, db, accessService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Subscription: subscriptionService,
		Movie:        movieService,
		Celebrity:    celebrityService,
		Watchlist:    watchlistService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает сервер и блокируется до отмены контекста либо ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
