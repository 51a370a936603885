package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации в обменнике напоминаний.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues возвращает очереди, которые обслуживает sender.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "reminder.upcoming", RoutingKey: "upcoming"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
