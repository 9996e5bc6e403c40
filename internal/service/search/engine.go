// Package search отбирает заказы по тексту и статусу.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// SummaryLister отдаёт заголовки заказов, отфильтрованные по статусу.
type SummaryLister interface {
	ListSummaries(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error)
}

// Engine выполняет поиск заказов. Состояния между вызовами не хранит.
type Engine struct {
	orders SummaryLister
}

// NewEngine создаёт Engine поверх репозитория заказов.
func NewEngine(orders SummaryLister) *Engine {
	return &Engine{orders: orders}
}

// Search возвращает заказы, подходящие под term и status, от новых к старым.
//
// term ищется без учёта регистра в имени клиента и в номере заказа;
// status: "all", пустая строка или один из статусов заказа.
// Заказы одного дня идут в порядке создания.
func (e *Engine) Search(ctx context.Context, term, status string) ([]domain.OrderSummary, error) {
	filter, err := domain.NewOrderFilter(term, status)
	if err != nil {
		return nil, err
	}

	candidates, err := e.orders.ListSummaries(ctx, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := make([]domain.OrderSummary, 0, len(candidates))
	for _, o := range candidates {
		if filter.Matches(o) {
			result = append(result, o)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.After(result[j].OrderDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
