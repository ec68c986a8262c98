// Package sender обрабатывает события о новых фильмах из очереди и рассылает
// push-уведомления на устройства пользователей с включёнными уведомлениями.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/pushprovider"
)

// notificationTitle и notificationBody — тексты push-уведомления о новом фильме.
const (
	notificationTitle = "New Movie Added!"
	notificationBody  = "%s has been added to the Movie Explorer collection."
)

// TokenSource возвращает push-токены устройств для рассылки.
type TokenSource interface {
	ListNotifiableDeviceTokens(ctx context.Context) ([]string, error)
}

// PushProvider отправляет push-уведомления на устройства.
type PushProvider interface {
	SendNotification(ctx context.Context, deviceTokens []string, title, body string, data map[string]string) []pushprovider.DeliveryResult
}

// Service превращает события очереди в push-рассылку.
type Service struct {
	tokens   TokenSource
	provider PushProvider
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(tokens TokenSource, provider PushProvider, log *slog.Logger) *Service {
	return &Service{
		tokens:   tokens,
		provider: provider,
		log:      log,
	}
}

// HandleMovieCreated обрабатывает событие о новом фильме. Нечитаемое тело
// сообщения подтверждается без повторной доставки, иначе оно будет крутиться
// в очереди бесконечно. Сбои доставки на отдельные устройства логируются и
// не считаются ошибкой обработки.
func (s *Service) HandleMovieCreated(body []byte) error {
	var event models.NewMovieEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal movie event, dropping message", sl.Err(err))
		return nil
	}

	ctx := context.Background()
	tokens, err := s.tokens.ListNotifiableDeviceTokens(ctx)
	if err != nil {
		s.log.Error("failed to load device tokens", sl.Err(err),
			slog.Int64("movie_id", event.MovieID))
		return err
	}
	if len(tokens) == 0 {
		s.log.Info("no devices to notify", slog.Int64("movie_id", event.MovieID))
		return nil
	}

	results := s.provider.SendNotification(ctx, tokens, notificationTitle,
		fmt.Sprintf(notificationBody, event.Title),
		map[string]string{"movie_id": fmt.Sprintf("%d", event.MovieID)})

	delivered := 0
	for _, res := range results {
		if res.Err != nil {
			s.log.Warn("push delivery failed", sl.Err(res.Err),
				slog.String("device_token", res.DeviceToken))
			continue
		}
		delivered++
	}
	s.log.Info("processed movie created event",
		slog.Int64("movie_id", event.MovieID),
		slog.Int("delivered", delivered),
		slog.Int("failed", len(results)-delivered))
	return nil
}
