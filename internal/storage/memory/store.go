package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// Store — in-memory хранилище магазина для локальной разработки и тестов.
// Все репозитории, созданные из одного Store, разделяют данные и мьютекс.
type Store struct {
	mu sync.RWMutex

	customers map[string]domain.Customer
	products  map[string]domain.Product
	orders    map[int64]domain.Order
	events    map[int64][]domain.TimelineEvent

	lastCustomerID int64
	lastProductID  int64
	lastOrderID    int64
	lastItemID     int64
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.customers = make(map[string]domain.Customer)
	s.products = make(map[string]domain.Product)
	s.orders = make(map[int64]domain.Order)
	s.events = make(map[int64][]domain.TimelineEvent)
	s.lastCustomerID, s.lastProductID = 0, 0
	s.lastOrderID, s.lastItemID = 0, 0
}

// Backup не поддерживается: у in-memory хранилища нет файла.
func (s *Store) Backup(context.Context, string, time.Time) (string, error) {
	return "", domain.ErrBackupUnsupported
}

// Recreate очищает все данные и сбрасывает счётчики.
func (s *Store) Recreate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return nil
}

// PurgeOrders удаляет заказы и события, оставляя каталог.
func (s *Store) PurgeOrders(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[int64]domain.Order)
	s.events = make(map[int64][]domain.TimelineEvent)
	s.lastOrderID, s.lastItemID = 0, 0
	return nil
}

// Snapshot возвращает данные для статистики.
func (s *Store) Snapshot(context.Context) (domain.StatisticsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.StatisticsSnapshot{
		CustomerCount: len(s.customers),
		ProductCount:  len(s.products),
	}
	for _, order := range s.orders {
		if order.Status == domain.OrderStatusPending {
			snap.PendingCount++
		}
		snap.OrderTotals = append(snap.OrderTotals, order.Total)
	}
	return snap, nil
}

var (
	_ domain.Maintainer       = (*Store)(nil)
	_ domain.StatisticsSource = (*Store)(nil)
)
