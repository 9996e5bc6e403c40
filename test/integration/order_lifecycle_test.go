package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/storedesk/internal/app"
	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/ticket"
)

// StoreLifecycleTestSuite прогоняет полный цикл магазина на SQLite-файле.
type StoreLifecycleTestSuite struct {
	suite.Suite
	deps  *app.Dependencies
	cfg   app.Config
	today time.Time
}

func (suite *StoreLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel)
	logger := baseLogger.WithField("component", "integration-test")

	dir := suite.T().TempDir()
	suite.cfg = app.DefaultConfig()
	suite.cfg.DBPath = filepath.Join(dir, "store.db")
	suite.cfg.BackupDir = filepath.Join(dir, "backup")
	suite.cfg.TicketDir = filepath.Join(dir, "tickets")

	deps, err := app.NewDependencies(context.Background(), suite.cfg, logger)
	suite.Require().NoError(err)
	suite.deps = deps
	suite.today = domain.CalendarDate(time.Now())

	ctx := context.Background()
	for _, name := range []string{"Ana", "Bruno"} {
		_, err := deps.Catalog.CreateCustomer(ctx, name, "", "")
		suite.Require().NoError(err)
	}
	_, err = deps.Catalog.CreateProduct(ctx, "Coffee", "5.00")
	suite.Require().NoError(err)
	_, err = deps.Catalog.CreateProduct(ctx, "Cake", "7.25")
	suite.Require().NoError(err)
}

func (suite *StoreLifecycleTestSuite) TearDownTest() {
	suite.Require().NoError(suite.deps.Close())
}

func (suite *StoreLifecycleTestSuite) placeOrder(customer string, delivery time.Time, items map[string]int) domain.Order {
	ctx := context.Background()
	draft := order.NewDraft(suite.deps.Catalog)
	for name, qty := range items {
		suite.Require().NoError(draft.AddItem(ctx, name, qty))
	}
	created, err := suite.deps.Orders.CreateOrder(ctx, customer, domain.FormatDisplayDate(delivery), draft.Items())
	suite.Require().NoError(err)
	return created
}

func (suite *StoreLifecycleTestSuite) TestOrderLifecycle() {
	ctx := context.Background()

	// 1. Создаём заказ и проверяем снимок цен
	created := suite.placeOrder("Ana", suite.today.AddDate(0, 0, 1), map[string]int{"Coffee": 3, "Cake": 2})
	suite.Equal("29.50", created.Total.StringFixed(2))
	suite.Equal(domain.OrderStatusPending, created.Status)

	_, err := suite.deps.Catalog.UpdateProduct(ctx, "Coffee", "Coffee", "9.00")
	suite.Require().NoError(err)
	reloaded, err := suite.deps.Orders.GetOrder(ctx, created.ID)
	suite.Require().NoError(err)
	suite.True(reloaded.Total.Equal(created.Total), "price change must not touch stored orders")

	// 2. Срочность: доставка завтра
	report, err := suite.deps.Tracker.CountUrgent(ctx)
	suite.Require().NoError(err)
	suite.Equal(1, report.DueTomorrow)
	suite.Equal(1, report.TotalPending)

	// 3. Доставляем и проверяем timeline
	updated, err := suite.deps.Orders.UpdateOrder(ctx, created.ID, domain.FormatDisplayDate(suite.today), "delivered")
	suite.Require().NoError(err)
	suite.Equal(domain.OrderStatusDelivered, updated.Status)

	events, err := suite.deps.Orders.Timeline(ctx, created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal(domain.TimelineOrderCreated, events[0].Type)

	report, err = suite.deps.Tracker.CountUrgent(ctx)
	suite.Require().NoError(err)
	suite.False(report.Urgent())

	// 4. Ticket
	path, err := ticket.Export(suite.cfg.TicketDir, updated, ticket.Options{})
	suite.Require().NoError(err)
	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Contains(string(data), "Status: DELIVERED")
	suite.Contains(string(data), "Total: 29.50")
}

func (suite *StoreLifecycleTestSuite) TestSearchAndStatistics() {
	ctx := context.Background()

	overdue := suite.placeOrder("Ana", suite.today.AddDate(0, 0, -2), map[string]int{"Coffee": 1})
	dueToday := suite.placeOrder("Bruno", suite.today, map[string]int{"Cake": 4})
	cancelled := suite.placeOrder("Bruno", suite.today.AddDate(0, 0, 10), map[string]int{"Coffee": 2})
	_, err := suite.deps.Orders.UpdateOrder(ctx, cancelled.ID,
		domain.FormatDisplayDate(cancelled.DeliveryDate), "cancelled")
	suite.Require().NoError(err)

	found, err := suite.deps.Search.Search(ctx, "bru", "all")
	suite.Require().NoError(err)
	suite.Require().Len(found, 2)
	suite.Equal(dueToday.ID, found[0].ID, "same order date keeps insertion order")
	suite.Equal(cancelled.ID, found[1].ID)

	pending, err := suite.deps.Search.Search(ctx, "", "pending")
	suite.Require().NoError(err)
	suite.Len(pending, 2)

	_, err = suite.deps.Search.Search(ctx, "", "shipped")
	suite.ErrorIs(err, domain.ErrStatusInvalid)

	report, err := suite.deps.Tracker.CountUrgent(ctx)
	suite.Require().NoError(err)
	suite.Equal(1, report.Overdue)
	suite.Equal(1, report.DueToday)
	suite.Equal(2, report.TotalPending)

	stats, err := suite.deps.Reports.ComputeStatistics(ctx)
	suite.Require().NoError(err)
	suite.Equal(2, stats.CustomerCount)
	suite.Equal(2, stats.ProductCount)
	suite.Equal(3, stats.OrderCount)
	suite.Equal(2, stats.PendingCount)
	suite.Equal("44.00", stats.TotalValue.StringFixed(2))
	suite.Equal("14.67", stats.AverageOrderValue.StringFixed(2))
	suite.NotZero(overdue.ID)
}

func (suite *StoreLifecycleTestSuite) TestAdministration() {
	ctx := context.Background()
	suite.placeOrder("Ana", suite.today.AddDate(0, 0, 3), map[string]int{"Coffee": 1})

	suite.Require().NoError(suite.deps.Admin.PurgeOrders(ctx))
	stats, err := suite.deps.Reports.ComputeStatistics(ctx)
	suite.Require().NoError(err)
	suite.Zero(stats.OrderCount)
	suite.Equal(2, stats.CustomerCount)

	again := suite.placeOrder("Ana", suite.today.AddDate(0, 0, 3), map[string]int{"Coffee": 1})
	suite.Equal(int64(1), again.ID, "purge resets order ids")

	backup, err := suite.deps.Admin.Reset(ctx)
	suite.Require().NoError(err)
	suite.FileExists(backup)

	stats, err = suite.deps.Reports.ComputeStatistics(ctx)
	suite.Require().NoError(err)
	suite.Zero(stats.CustomerCount)
	suite.Zero(stats.ProductCount)
	suite.Zero(stats.OrderCount)
	suite.True(stats.TotalValue.IsZero())
}

func TestStoreLifecycleSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration suite skipped in -short mode")
	}
	suite.Run(t, new(StoreLifecycleTestSuite))
}
