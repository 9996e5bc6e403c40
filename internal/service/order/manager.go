// Package order собирает черновики заказов и управляет сохранёнными заказами.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/metrics"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
)

// CustomerResolver ищет клиента по имени.
type CustomerResolver interface {
	ResolveCustomer(ctx context.Context, name string) (domain.Customer, error)
}

// Options задает необязательные зависимости Manager.
type Options struct {
	Logger    *log.Entry
	Policy    lifecycle.TransitionPolicy
	Clock     func() time.Time
	Publisher domain.OrderEventPublisher
	Metrics   *metrics.StoreMetrics
	Timeline  domain.TimelineRepository
}

// Option настраивает Manager.
type Option func(*Options)

// WithLogger задает logger менеджера.
func WithLogger(logger *log.Entry) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithPolicy подменяет политику переходов статусов.
func WithPolicy(policy lifecycle.TransitionPolicy) Option {
	return func(o *Options) { o.Policy = policy }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Clock = now }
}

// WithPublisher включает публикацию событий заказа после коммита.
func WithPublisher(p domain.OrderEventPublisher) Option {
	return func(o *Options) { o.Publisher = p }
}

// WithMetrics включает метрики.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithTimeline подключает чтение timeline заказа.
func WithTimeline(repo domain.TimelineRepository) Option {
	return func(o *Options) { o.Timeline = repo }
}

// Manager сохраняет заказы целиком и редактирует их заголовки.
type Manager struct {
	orders    domain.OrderRepository
	customers CustomerResolver
	timeline  domain.TimelineRepository
	policy    lifecycle.TransitionPolicy
	now       func() time.Time
	publisher domain.OrderEventPublisher
	metrics   *metrics.StoreMetrics
	logger    *log.Entry
}

// NewManager создаёт Manager. По умолчанию используется PermissivePolicy.
func NewManager(orders domain.OrderRepository, customers CustomerResolver, options ...Option) *Manager {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "order-manager")
	}
	if opts.Policy == nil {
		opts.Policy = lifecycle.PermissivePolicy{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Manager{
		orders:    orders,
		customers: customers,
		timeline:  opts.Timeline,
		policy:    opts.Policy,
		now:       opts.Clock,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
}

// CreateOrder атомарно сохраняет заголовок (pending, order_date = сегодня) и все позиции.
func (m *Manager) CreateOrder(ctx context.Context, customerName, deliveryDate string, items []domain.DraftItem) (order domain.Order, err error) {
	start := time.Now()
	defer func() {
		if m.metrics != nil {
			m.metrics.RecordOrderCreated(err)
			m.metrics.ObserveOperation("create_order", time.Since(start))
		}
	}()

	orderItems, total, err := domain.NewOrderItems(items)
	if err != nil {
		return domain.Order{}, err
	}
	delivery, err := domain.ParseDisplayDate(deliveryDate)
	if err != nil {
		return domain.Order{}, err
	}
	customer, err := m.customers.ResolveCustomer(ctx, customerName)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Order{}, fmt.Errorf("%w: %q", domain.ErrUnknownCustomer, customerName)
		}
		return domain.Order{}, err
	}

	now := m.now()
	order = domain.Order{
		CustomerName: customer.Name,
		OrderDate:    domain.CalendarDate(now),
		DeliveryDate: delivery,
		Status:       domain.OrderStatusPending,
		Total:        total,
		Items:        orderItems,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}

	order, err = m.orders.Create(ctx, order, domain.TimelineEvent{
		Type:     domain.TimelineOrderCreated,
		Reason:   fmt.Sprintf("%d item(s), total %s", len(order.Items), order.Total.StringFixed(2)),
		Occurred: now,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	m.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"customer": order.CustomerName,
		"total":    order.Total.StringFixed(2),
	}).Info("order created")
	m.publish(ctx, domain.EventOrderCreated, order)
	return order, nil
}

// UpdateOrder перезаписывает дату доставки и статус. Позиции и итог не меняются.
func (m *Manager) UpdateOrder(ctx context.Context, id int64, deliveryDate, status string) (order domain.Order, err error) {
	start := time.Now()
	defer func() {
		if m.metrics != nil {
			m.metrics.RecordOrderUpdated(err)
			m.metrics.ObserveOperation("update_order", time.Since(start))
		}
	}()

	delivery, err := domain.ParseDisplayDate(deliveryDate)
	if err != nil {
		return domain.Order{}, err
	}
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return domain.Order{}, err
	}

	current, err := m.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if err := m.policy.Check(current.Status, next); err != nil {
		return domain.Order{}, err
	}

	now := m.now()
	var events []domain.TimelineEvent
	if current.Status != next {
		events = append(events, domain.TimelineEvent{
			Type:     domain.TimelineStatusChanged,
			Reason:   fmt.Sprintf("%s -> %s", current.Status, next),
			Occurred: now,
		})
	}
	if !current.DeliveryDate.Equal(delivery) {
		events = append(events, domain.TimelineEvent{
			Type: domain.TimelineDeliveryRescheduled,
			Reason: fmt.Sprintf("%s -> %s",
				domain.FormatDisplayDate(current.DeliveryDate), domain.FormatDisplayDate(delivery)),
			Occurred: now,
		})
	}

	order, err = m.orders.UpdateHeader(ctx, id, delivery, next, events...)
	if err != nil {
		return domain.Order{}, err
	}

	m.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
		"delivery": domain.FormatDisplayDate(order.DeliveryDate),
	}).Info("order updated")
	m.publish(ctx, domain.EventOrderUpdated, order)
	return order, nil
}

// GetOrder возвращает заказ с позициями.
func (m *Manager) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return m.orders.Get(ctx, id)
}

// Timeline возвращает историю событий заказа.
func (m *Manager) Timeline(ctx context.Context, id int64) ([]domain.TimelineEvent, error) {
	if _, err := m.orders.Get(ctx, id); err != nil {
		return nil, err
	}
	if m.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return m.timeline.List(ctx, id)
}

// publish отправляет событие после коммита; сбой публикации только логируется.
func (m *Manager) publish(ctx context.Context, eventType string, order domain.Order) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.PublishOrderEvent(ctx, eventType, order); err != nil {
		m.logger.WithError(err).WithFields(log.Fields{
			"order_id":   order.ID,
			"event_type": eventType,
		}).Warn("order event publish failed")
	}
}
