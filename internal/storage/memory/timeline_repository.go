package memory

import (
	"context"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// timelineRepositoryInMemory читает события, записанные репозиторием заказов.
type timelineRepositoryInMemory struct {
	store *Store
}

// NewTimelineRepository создаёт in-memory реализацию TimelineRepository.
func NewTimelineRepository(store *Store) domain.TimelineRepository {
	return &timelineRepositoryInMemory{store: store}
}

// List возвращает события заказа в порядке записи.
func (r *timelineRepositoryInMemory) List(_ context.Context, orderID int64) ([]domain.TimelineEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := r.store.events[orderID]
	result := make([]domain.TimelineEvent, len(events))
	copy(result, events)
	return result, nil
}

var _ domain.TimelineRepository = (*timelineRepositoryInMemory)(nil)
