// Package report считает сводную статистику магазина.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// точность среднего чека
const averagePlaces = 2

// Aggregator вычисляет статистику заново при каждом вызове, без кэша.
type Aggregator struct {
	source domain.StatisticsSource
}

// NewAggregator создаёт Aggregator.
func NewAggregator(source domain.StatisticsSource) *Aggregator {
	return &Aggregator{source: source}
}

// ComputeStatistics возвращает счётчики, сумму и средний чек.
// Средний чек равен 0, если заказов нет.
func (a *Aggregator) ComputeStatistics(ctx context.Context) (domain.Statistics, error) {
	snap, err := a.source.Snapshot(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("statistics snapshot: %w", err)
	}
	return Compute(snap), nil
}

// Compute сворачивает снимок в статистику.
func Compute(snap domain.StatisticsSnapshot) domain.Statistics {
	total := decimal.Zero
	for _, t := range snap.OrderTotals {
		total = total.Add(t)
	}

	stats := domain.Statistics{
		CustomerCount:     snap.CustomerCount,
		ProductCount:      snap.ProductCount,
		OrderCount:        len(snap.OrderTotals),
		PendingCount:      snap.PendingCount,
		TotalValue:        total,
		AverageOrderValue: decimal.Zero,
	}
	if stats.OrderCount > 0 {
		stats.AverageOrderValue = total.DivRound(decimal.NewFromInt(int64(stats.OrderCount)), averagePlaces)
	}
	return stats
}
