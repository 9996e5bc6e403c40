package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory репозиторий заказов поверх store.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

// Create присваивает идентификаторы и сохраняет заказ вместе с событиями.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order, events ...domain.TimelineEvent) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.lastOrderID++
	order.ID = r.store.lastOrderID

	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	for i := range items {
		r.store.lastItemID++
		items[i].ID = r.store.lastItemID
		items[i].OrderID = order.ID
	}
	order.Items = items

	r.store.orders[order.ID] = order
	r.appendLocked(order.ID, events)
	return cloneOrder(order), nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(_ context.Context, id int64) (domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	return cloneOrder(order), nil
}

// UpdateHeader перезаписывает только дату доставки и статус.
func (r *orderRepositoryInMemory) UpdateHeader(
	_ context.Context,
	id int64,
	delivery time.Time,
	status domain.OrderStatus,
	events ...domain.TimelineEvent,
) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
	}
	order.DeliveryDate = delivery
	order.Status = status
	r.store.orders[id] = order
	r.appendLocked(id, events)
	return cloneOrder(order), nil
}

// ListSummaries возвращает заголовки по убыванию order_date, затем id.
func (r *orderRepositoryInMemory) ListSummaries(_ context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.OrderSummary, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		if status != "" && order.Status != status {
			continue
		}
		result = append(result, order.Summary())
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *orderRepositoryInMemory) appendLocked(orderID int64, events []domain.TimelineEvent) {
	for _, event := range events {
		event.OrderID = orderID
		if event.Occurred.IsZero() {
			event.Occurred = time.Now()
		}
		r.store.events[orderID] = append(r.store.events[orderID], event)
	}
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
