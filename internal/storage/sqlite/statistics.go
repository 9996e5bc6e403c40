package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

type statisticsSource struct {
	db *sql.DB
}

// NewStatisticsSource создаёт источник данных для сводной статистики.
func NewStatisticsSource(store *Store) domain.StatisticsSource {
	return &statisticsSource{db: store.DB()}
}

// Snapshot читает счётчики и итоги заказов в одной транзакции.
// Итоги суммируются в decimal на стороне Go: в базе они хранятся текстом.
func (s *statisticsSource) Snapshot(ctx context.Context) (domain.StatisticsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var snap domain.StatisticsSnapshot
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(*) FROM customers),
				(SELECT COUNT(*) FROM products),
				(SELECT COUNT(*) FROM orders WHERE status = ?)
		`, string(domain.OrderStatusPending)).Scan(&snap.CustomerCount, &snap.ProductCount, &snap.PendingCount); err != nil {
			return fmt.Errorf("count store entities: %w", err)
		}

		rows, err := tx.QueryContext(ctx, `SELECT total FROM orders`)
		if err != nil {
			return fmt.Errorf("select order totals: %w", err)
		}
		defer rows.Close()

		snap.OrderTotals = make([]decimal.Decimal, 0)
		for rows.Next() {
			var raw string
			if err := rows.Scan(&raw); err != nil {
				return fmt.Errorf("scan order total: %w", err)
			}
			total, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("parse order total %q: %w", raw, err)
			}
			snap.OrderTotals = append(snap.OrderTotals, total)
		}
		return rows.Err()
	})
	if err != nil {
		return domain.StatisticsSnapshot{}, err
	}

	return snap, nil
}

var _ domain.StatisticsSource = (*statisticsSource)(nil)
