// Package lifecycle задаёт допустимые переходы статусов и срочность доставок.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// PendingLister отдаёт заголовки заказов с нужным статусом.
type PendingLister interface {
	ListSummaries(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error)
}

// Tracker считает срочные доставки относительно текущей локальной даты.
type Tracker struct {
	orders PendingLister
	now    func() time.Time
}

// NewTracker создаёт Tracker. now=nil означает time.Now.
func NewTracker(orders PendingLister, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{orders: orders, now: now}
}

// CountUrgent классифицирует все ожидающие заказы. Отсутствие заказов не ошибка.
func (t *Tracker) CountUrgent(ctx context.Context) (domain.UrgencyReport, error) {
	pending, err := t.orders.ListSummaries(ctx, domain.OrderStatusPending)
	if err != nil {
		return domain.UrgencyReport{}, fmt.Errorf("list pending orders: %w", err)
	}

	now := t.now()
	report := domain.UrgencyReport{TotalPending: len(pending), CheckedAt: now}
	for _, o := range pending {
		switch domain.ClassifyUrgency(o.Status, o.DeliveryDate, now) {
		case domain.UrgencyOverdue:
			report.Overdue++
		case domain.UrgencyDueToday:
			report.DueToday++
		case domain.UrgencyDueTomorrow:
			report.DueTomorrow++
		}
	}
	return report, nil
}

// Summary собирает человекочитаемую сводку по отчёту срочности.
func Summary(r domain.UrgencyReport) string {
	if !r.Urgent() {
		return "no urgent deliveries"
	}
	lines := make([]string, 0, 3)
	if r.Overdue > 0 {
		lines = append(lines, fmt.Sprintf("%d overdue order(s)", r.Overdue))
	}
	if r.DueToday > 0 {
		lines = append(lines, fmt.Sprintf("%d delivery(ies) due today", r.DueToday))
	}
	if r.DueTomorrow > 0 {
		lines = append(lines, fmt.Sprintf("%d delivery(ies) due tomorrow", r.DueTomorrow))
	}
	return strings.Join(lines, "\n")
}
