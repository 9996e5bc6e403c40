package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Urgency — категория срочности ожидающего заказа относительно текущей даты.
type Urgency string

const (
	UrgencyNone        Urgency = ""
	UrgencyOverdue     Urgency = "overdue"
	UrgencyDueToday    Urgency = "due_today"
	UrgencyDueTomorrow Urgency = "due_tomorrow"
)

// ClassifyUrgency сравнивает дату доставки с календарной датой today.
// Заказы не в статусе pending срочности не имеют.
func ClassifyUrgency(status OrderStatus, delivery, today time.Time) Urgency {
	if status != OrderStatusPending {
		return UrgencyNone
	}
	d := CalendarDate(delivery)
	t := CalendarDate(today)
	switch {
	case d.Before(t):
		return UrgencyOverdue
	case d.Equal(t):
		return UrgencyDueToday
	case d.Equal(t.AddDate(0, 0, 1)):
		return UrgencyDueTomorrow
	default:
		return UrgencyNone
	}
}

// UrgencyReport содержит результат CountUrgent.
type UrgencyReport struct {
	Overdue      int       `json:"overdue"`
	DueToday     int       `json:"due_today"`
	DueTomorrow  int       `json:"due_tomorrow"`
	TotalPending int       `json:"total_pending"`
	CheckedAt    time.Time `json:"checked_at"`
}

// Urgent сообщает, есть ли что-то, требующее внимания.
func (r UrgencyReport) Urgent() bool {
	return r.Overdue > 0 || r.DueToday > 0 || r.DueTomorrow > 0
}

// OrderFilter — условия поиска заказов. Term и Status объединяются через AND.
type OrderFilter struct {
	Term string
	// Status пустой означает «все статусы».
	Status OrderStatus
}

// NewOrderFilter проверяет статус фильтра: "all", пустая строка или один из трёх статусов.
func NewOrderFilter(term, status string) (OrderFilter, error) {
	f := OrderFilter{Term: strings.TrimSpace(term)}
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, StatusAll) {
		return f, nil
	}
	parsed, err := ParseOrderStatus(status)
	if err != nil {
		return OrderFilter{}, err
	}
	f.Status = parsed
	return f, nil
}

// Matches применяет фильтр к заказу. Term ищется без учёта регистра как
// подстрока имени клиента или текстового идентификатора заказа.
func (f OrderFilter) Matches(o OrderSummary) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Term == "" {
		return true
	}
	term := strings.ToLower(f.Term)
	if strings.Contains(strings.ToLower(o.CustomerName), term) {
		return true
	}
	return strings.Contains(strconv.FormatInt(o.ID, 10), term)
}

// Statistics — сводные показатели магазина.
type Statistics struct {
	CustomerCount     int             `json:"customer_count"`
	ProductCount      int             `json:"product_count"`
	OrderCount        int             `json:"order_count"`
	PendingCount      int             `json:"pending_count"`
	TotalValue        decimal.Decimal `json:"total_value"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// StatisticsSnapshot — сырые данные для расчёта статистики, снятые в одной транзакции.
type StatisticsSnapshot struct {
	CustomerCount int
	ProductCount  int
	PendingCount  int
	OrderTotals   []decimal.Decimal
}
