package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
)

// DefaultExchange — fanout exchange для оповещений.
const DefaultExchange = "store_notifications"

// UrgencyMessage — тело сообщения со снимком срочности.
type UrgencyMessage struct {
	MessageID    string    `json:"message_id"`
	Overdue      int       `json:"overdue"`
	DueToday     int       `json:"due_today"`
	DueTomorrow  int       `json:"due_tomorrow"`
	TotalPending int       `json:"total_pending"`
	Summary      string    `json:"summary"`
	CheckedAt    time.Time `json:"checked_at"`
}

// Notifier публикует отчёты срочности в fanout exchange.
type Notifier struct {
	conn     Connection
	exchange string
}

var _ domain.UrgencyNotifier = (*Notifier)(nil)

// NewNotifier создаёт Notifier. Пустой exchange заменяется DefaultExchange.
func NewNotifier(conn Connection, exchange string) *Notifier {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Notifier{conn: conn, exchange: exchange}
}

// Notify объявляет exchange и публикует отчёт.
func (n *Notifier) Notify(ctx context.Context, report domain.UrgencyReport) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(n.exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	msg := UrgencyMessage{
		MessageID:    uuid.NewString(),
		Overdue:      report.Overdue,
		DueToday:     report.DueToday,
		DueTomorrow:  report.DueTomorrow,
		TotalPending: report.TotalPending,
		Summary:      lifecycle.Summary(report),
		CheckedAt:    report.CheckedAt,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, n.exchange, "", false, false, amqp.Publishing{
		MessageId:   msg.MessageID,
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает соединение с брокером.
func (n *Notifier) Close() error {
	return n.conn.Close()
}
