package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeUrgencySnapshot EventType = "store.urgency.snapshot"
	EventTypeOrderCreated    EventType = domain.EventOrderCreated
	EventTypeOrderUpdated    EventType = domain.EventOrderUpdated
)

// TopicNotifications — topic по умолчанию для всех событий магазина.
const TopicNotifications = "store.notifications"

// UrgencyEvent переносит отчёт срочности доставок.
type UrgencyEvent struct {
	EventID      string    `json:"event_id"`
	EventType    EventType `json:"event_type"`
	Overdue      int       `json:"overdue"`
	DueToday     int       `json:"due_today"`
	DueTomorrow  int       `json:"due_tomorrow"`
	TotalPending int       `json:"total_pending"`
	Summary      string    `json:"summary"`
	CheckedAt    time.Time `json:"checked_at"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderEvent переносит заголовок заказа после create/update.
type OrderEvent struct {
	EventID      string    `json:"event_id"`
	EventType    EventType `json:"event_type"`
	OrderID      int64     `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	OrderDate    string    `json:"order_date"`
	DeliveryDate string    `json:"delivery_date"`
	Total        string    `json:"total"`
	ItemCount    int       `json:"item_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewUrgencyEvent создает событие срочности
func NewUrgencyEvent(report domain.UrgencyReport) *UrgencyEvent {
	return &UrgencyEvent{
		EventID:      uuid.NewString(),
		EventType:    EventTypeUrgencySnapshot,
		Overdue:      report.Overdue,
		DueToday:     report.DueToday,
		DueTomorrow:  report.DueTomorrow,
		TotalPending: report.TotalPending,
		Summary:      lifecycle.Summary(report),
		CheckedAt:    report.CheckedAt,
		Timestamp:    time.Now(),
	}
}

// NewOrderEvent создает событие заказа
func NewOrderEvent(eventType EventType, order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Status:       string(order.Status),
		OrderDate:    domain.FormatStorageDate(order.OrderDate),
		DeliveryDate: domain.FormatStorageDate(order.DeliveryDate),
		Total:        order.Total.StringFixed(2),
		ItemCount:    len(order.Items),
		Timestamp:    time.Now(),
	}
}
