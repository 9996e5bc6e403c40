package domain

import "time"

// Типы событий timeline заказа.
const (
	TimelineOrderCreated        = "order_created"
	TimelineStatusChanged       = "status_changed"
	TimelineDeliveryRescheduled = "delivery_rescheduled"
)

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  int64
	Type     string
	Reason   string
	Occurred time.Time
}
