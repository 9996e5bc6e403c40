package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

func openStoreForTest(t *testing.T) *Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := OpenAndMigrate(ctx, filepath.Join(t.TempDir(), "data", "store.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func sampleOrder(customer string, orderDate time.Time, status domain.OrderStatus) domain.Order {
	price := decimal.RequireFromString("5.00")
	return domain.Order{
		CustomerName: customer,
		OrderDate:    orderDate,
		DeliveryDate: orderDate.AddDate(0, 0, 7),
		Status:       status,
		Total:        decimal.RequireFromString("15.00"),
		Items: []domain.OrderItem{
			{
				ProductName: "Coffee",
				Quantity:    3,
				UnitPrice:   price,
				LineTotal:   decimal.RequireFromString("15.00"),
			},
		},
	}
}

func seedCatalog(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := NewCustomerRepository(store).Create(ctx, domain.Customer{Name: "Ana", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	if _, err := NewProductRepository(store).Create(ctx, domain.Product{Name: "Coffee", Price: decimal.RequireFromString("5.00")}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func countRows(t *testing.T, store *Store, table string) int {
	t.Helper()

	var n int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
