package domain

import "context"

// UrgencyNotifier доставляет сводку срочности внешнему получателю
// (лог, Kafka, RabbitMQ).
type UrgencyNotifier interface {
	Notify(ctx context.Context, report UrgencyReport) error
}

// OrderEventPublisher публикует события заказа после успешного коммита.
type OrderEventPublisher interface {
	// PublishOrderEvent передаёт событие наружу; ошибки не откатывают операцию.
	PublishOrderEvent(ctx context.Context, eventType string, order Order) error
}

// Типы событий заказа для внешних публикаций.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
)
