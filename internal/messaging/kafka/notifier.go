package kafka

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

const urgencyKey = "urgency"

// Notifier публикует отчёты срочности и события заказов в один topic.
type Notifier struct {
	producer *Producer
	topic    string
}

var (
	_ domain.UrgencyNotifier     = (*Notifier)(nil)
	_ domain.OrderEventPublisher = (*Notifier)(nil)
)

// NewNotifier создаёт Kafka notifier. Пустой topic заменяется TopicNotifications.
func NewNotifier(producer *Producer, topic string) *Notifier {
	if topic == "" {
		topic = TopicNotifications
	}
	return &Notifier{producer: producer, topic: topic}
}

// Notify отправляет снимок срочности.
func (n *Notifier) Notify(ctx context.Context, report domain.UrgencyReport) error {
	if n == nil || n.producer == nil {
		return fmt.Errorf("kafka notifier is not initialized")
	}
	return n.producer.PublishEvent(ctx, n.topic, urgencyKey, NewUrgencyEvent(report))
}

// PublishOrderEvent отправляет событие заказа с ключом order id.
func (n *Notifier) PublishOrderEvent(ctx context.Context, eventType string, order domain.Order) error {
	if n == nil || n.producer == nil {
		return fmt.Errorf("kafka notifier is not initialized")
	}
	key := strconv.FormatInt(order.ID, 10)
	return n.producer.PublishEvent(ctx, n.topic, key, NewOrderEvent(EventType(eventType), order))
}
