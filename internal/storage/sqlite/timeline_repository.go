package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

type timelineRepository struct {
	db *sql.DB
}

// NewTimelineRepository создаёт SQLite-реализацию TimelineRepository.
func NewTimelineRepository(store *Store) domain.TimelineRepository {
	return &timelineRepository{db: store.DB()}
}

// appendEvent пишет событие в рамках транзакции изменения заказа.
func appendEvent(ctx context.Context, tx *sql.Tx, event domain.TimelineEvent) error {
	occurred := event.Occurred
	if occurred.IsZero() {
		occurred = time.Now()
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_events (order_id, event_type, reason, occurred_at)
		VALUES (?, ?, ?, ?)
	`, event.OrderID, event.Type, event.Reason, occurred.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

func (r *timelineRepository) List(ctx context.Context, orderID int64) ([]domain.TimelineEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, event_type, reason, occurred_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	defer rows.Close()

	events := make([]domain.TimelineEvent, 0)
	for rows.Next() {
		var (
			event    domain.TimelineEvent
			occurred string
		)
		if err := rows.Scan(&event.OrderID, &event.Type, &event.Reason, &occurred); err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		if event.Occurred, err = time.Parse(time.RFC3339Nano, occurred); err != nil {
			return nil, fmt.Errorf("parse timeline occurred_at %q: %w", occurred, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeline: %w", err)
	}

	return events, nil
}

var _ domain.TimelineRepository = (*timelineRepository)(nil)
