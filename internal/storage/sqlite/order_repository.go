package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

const orderSummaryColumns = `id, order_date, customer_name, delivery_date, status, total`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт SQLite-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order, events ...domain.TimelineEvent) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	order.Items = append([]domain.OrderItem(nil), order.Items...)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (order_date, customer_name, delivery_date, status, total)
			VALUES (?, ?, ?, ?, ?)
		`,
			domain.FormatStorageDate(order.OrderDate), order.CustomerName,
			domain.FormatStorageDate(order.DeliveryDate), string(order.Status), order.Total.String(),
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		order.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("order last insert id: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			res, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_name, quantity, unit_price, line_total)
				VALUES (?, ?, ?, ?, ?)
			`, order.ID, item.ProductName, item.Quantity, item.UnitPrice.String(), item.LineTotal.String())
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			if item.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("order item last insert id: %w", err)
			}
			item.OrderID = order.ID
		}

		for _, event := range events {
			event.OrderID = order.ID
			if err := appendEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	summary, err := scanSummary(r.db.QueryRowContext(ctx,
		`SELECT `+orderSummaryColumns+` FROM orders WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:           summary.ID,
		CustomerName: summary.CustomerName,
		OrderDate:    summary.OrderDate,
		DeliveryDate: summary.DeliveryDate,
		Status:       summary.Status,
		Total:        summary.Total,
		Items:        items,
	}, nil
}

func (r *orderRepository) UpdateHeader(
	ctx context.Context,
	id int64,
	delivery time.Time,
	status domain.OrderStatus,
	events ...domain.TimelineEvent,
) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET delivery_date = ?,
			    status = ?
			WHERE id = ?
		`, domain.FormatStorageDate(delivery), string(status), id)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: id %d", domain.ErrOrderNotFound, id)
		}

		for _, event := range events {
			event.OrderID = id
			if err := appendEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return r.Get(ctx, id)
}

func (r *orderRepository) ListSummaries(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `SELECT ` + orderSummaryColumns + ` FROM orders`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY order_date DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.OrderSummary, 0)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return summaries, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_name, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var (
			item            domain.OrderItem
			unitPrice, line string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &unitPrice, &line); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price %q: %w", unitPrice, err)
		}
		if item.LineTotal, err = decimal.NewFromString(line); err != nil {
			return nil, fmt.Errorf("parse line total %q: %w", line, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func scanSummary(row rowScanner) (domain.OrderSummary, error) {
	var (
		summary                    domain.OrderSummary
		orderDate, delivery, total string
		status                     string
	)
	if err := row.Scan(&summary.ID, &orderDate, &summary.CustomerName, &delivery, &status, &total); err != nil {
		return domain.OrderSummary{}, err
	}

	var err error
	if summary.OrderDate, err = domain.ParseStorageDate(orderDate); err != nil {
		return domain.OrderSummary{}, err
	}
	if summary.DeliveryDate, err = domain.ParseStorageDate(delivery); err != nil {
		return domain.OrderSummary{}, err
	}
	if summary.Total, err = decimal.NewFromString(total); err != nil {
		return domain.OrderSummary{}, fmt.Errorf("parse order total %q: %w", total, err)
	}
	summary.Status = domain.OrderStatus(status)
	return summary, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
