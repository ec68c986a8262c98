package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// MoviePublisher публикует события о новых фильмах в обменник уведомлений.
type MoviePublisher struct {
	ch *amqp.Channel
}

// NewMoviePublisher создает новый экземпляр MoviePublisher.
func NewMoviePublisher(ch *amqp.Channel) *MoviePublisher {
	return &MoviePublisher{ch: ch}
}

// PublishMovieCreated отправляет событие о добавлении фильма в каталог.
func (p *MoviePublisher) PublishMovieCreated(event models.NewMovieEvent) error {
	return PublishMessage(p.ch, NotificationsExchange, MovieCreatedKey, event)
}
