// Package sender собирает и запускает воркер push-уведомлений о новых фильмах.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/movie-explorer/internal/config"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/movie-explorer/internal/pushprovider"
	senderservice "github.com/magabrotheeeer/movie-explorer/internal/services/sender"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// App инкапсулирует соединение с брокером и сервис отправки уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	db            *repository.Storage
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New создаёт воркер: подключает хранилище, FCM-клиент и брокер очередей.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	pushClient, err := pushprovider.NewClient(cfg.FCM.ServiceAccountFile, cfg.FCM.ProjectID, cfg.FCM.TimeoutFCM)
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

	senderService := senderservice.New(db, pushClient, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		db:            db,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди новых фильмов и блокируется до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.MovieQueueName, a.senderService.HandleMovieCreated)
	if err != nil {
		a.logger.Error("failed to start movie queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	a.db.DB.Close()

	return nil
}
