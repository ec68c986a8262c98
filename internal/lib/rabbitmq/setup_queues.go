package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Exchange уведомлений и маршрут события нового фильма.
const (
	NotificationsExchange = "notifications"
	MovieCreatedKey       = "movie.created"
	MovieQueueName        = "notification.movie"
)

// GetNotificationQueues возвращает очереди воркера push-уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: MovieQueueName, RoutingKey: MovieCreatedKey},
	}
}
