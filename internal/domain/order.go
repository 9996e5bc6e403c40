package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа в магазине.
type OrderStatus string

const (
	// OrderStatusPending: заказ создан и ждёт доставки. Единственный начальный статус.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusDelivered: заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled: заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// StatusAll — значение фильтра поиска «любой статус».
const StatusAll = "all"

// OrderStatuses возвращает все допустимые статусы в каноническом порядке.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled}
}

// ParseOrderStatus разбирает статус без учёта регистра и пробелов.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", ErrStatusInvalid
	}
	return status, nil
}

// Valid сообщает, входит ли статус в допустимое множество.
func (s OrderStatus) Valid() bool {
	return slices.Contains(OrderStatuses(), s)
}

// Terminal сообщает, является ли статус задуманным как конечный.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem представляет одну позицию заказа.
//
// ProductName и UnitPrice содержат снимки на момент создания заказа: последующие
// переименования товара или смена цены их не затрагивают.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Order агрегирует заголовок заказа и его позиции.
//
// CustomerName хранит снимок имени клиента на момент создания. Позиции после
// сохранения неизменяемы; редактируются только DeliveryDate и Status.
type Order struct {
	ID           int64
	CustomerName string
	OrderDate    time.Time
	DeliveryDate time.Time
	Status       OrderStatus
	Total        decimal.Decimal
	Items        []OrderItem
}

// DraftItem — позиция черновика, ещё не привязанная к заказу.
type DraftItem struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal возвращает quantity × unit_price.
func (d DraftItem) LineTotal() decimal.Decimal {
	return d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// NewOrderItems превращает позиции черновика в позиции заказа и считает итог.
func NewOrderItems(drafts []DraftItem) ([]OrderItem, decimal.Decimal, error) {
	if len(drafts) == 0 {
		return nil, decimal.Zero, ErrItemsRequired
	}

	items := make([]OrderItem, 0, len(drafts))
	total := decimal.Zero
	for _, d := range drafts {
		if strings.TrimSpace(d.ProductName) == "" {
			return nil, decimal.Zero, ErrProductNameRequired
		}
		if d.Quantity <= 0 {
			return nil, decimal.Zero, ErrItemQtyInvalid
		}
		if d.UnitPrice.IsNegative() {
			return nil, decimal.Zero, ErrItemPriceInvalid
		}
		line := d.LineTotal()
		items = append(items, OrderItem{
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			LineTotal:   line,
		})
		total = total.Add(line)
	}
	return items, total, nil
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(o.CustomerName) == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrStatusInvalid)
	}

	// Сверяем итог заказа с суммой позиций: qty * unit_price.
	calc := decimal.Zero
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPrice.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
		if !item.LineTotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))) {
			errs = append(errs, ErrTotalMismatch)
		}
		calc = calc.Add(item.LineTotal)
	}
	if !calc.Equal(o.Total) {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}

// Summary сворачивает заказ до строки списка.
func (o Order) Summary() OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		Status:       o.Status,
		Total:        o.Total,
	}
}

// OrderSummary — заголовок заказа без позиций, строка результатов поиска.
type OrderSummary struct {
	ID           int64
	CustomerName string
	OrderDate    time.Time
	DeliveryDate time.Time
	Status       OrderStatus
	Total        decimal.Decimal
}
