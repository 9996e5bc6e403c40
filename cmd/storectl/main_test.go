package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/catalog"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/storage/sqlite"
)

func seedStore(t *testing.T) (string, int64) {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")
	store, err := sqlite.OpenAndMigrate(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	cat := catalog.NewService(sqlite.NewCustomerRepository(store), sqlite.NewProductRepository(store))
	_, err = cat.CreateCustomer(ctx, "Ana", "", "")
	require.NoError(t, err)
	_, err = cat.CreateProduct(ctx, "Coffee", "5.00")
	require.NoError(t, err)

	manager := order.NewManager(sqlite.NewOrderRepository(store), cat)
	created, err := manager.CreateOrder(ctx, "Ana", "31/12/2099",
		[]domain.DraftItem{{ProductName: "Coffee", Quantity: 2, UnitPrice: decimal.RequireFromString("5")}})
	require.NoError(t, err)
	return path, created.ID
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestRun_Version(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=")
}

func TestRun_UsageErrors(t *testing.T) {
	_, err := runCLI(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: storectl")

	db := filepath.Join(t.TempDir(), "store.db")
	_, err = runCLI(t, "-db", db, "explode")
	assert.ErrorContains(t, err, `unknown command "explode"`)

	_, err = runCLI(t, "-db", db, "reset")
	assert.ErrorContains(t, err, "pass -yes")

	_, err = runCLI(t, "-db", db, "purge-orders")
	assert.ErrorContains(t, err, "pass -yes")

	_, err = runCLI(t, "-db", db, "ticket")
	assert.ErrorContains(t, err, "-id is required")

	_, err = runCLI(t, "-db", db, "migrate", "sideways")
	assert.ErrorContains(t, err, "unsupported direction")
}

func TestRun_Migrate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "store.db")

	out, err := runCLI(t, "-db", db, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "version=0 applied=0")

	out, err = runCLI(t, "-db", db, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "version=2 applied=2")

	out, err = runCLI(t, "-db", db, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "version=1 applied=1")
}

func TestRun_StatsAndUrgent(t *testing.T) {
	t.Setenv("STORE_CURRENCY_SYMBOL", "$")
	db, _ := seedStore(t)

	out, err := runCLI(t, "-db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "customers:     1")
	assert.Contains(t, out, "orders:        1")
	assert.Contains(t, out, "total value:   $ 10.00")

	out, err = runCLI(t, "-db", db, "urgent")
	require.NoError(t, err)
	assert.Contains(t, out, "no urgent deliveries")
	assert.Contains(t, out, "pending: 1")
}

func TestRun_Ticket(t *testing.T) {
	db, id := seedStore(t)
	dir := filepath.Join(t.TempDir(), "tickets")

	out, err := runCLI(t, "-db", db, "ticket", "-id", strconv.FormatInt(id, 10), "-dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "order_"+strconv.FormatInt(id, 10)+".txt")
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Customer: Ana")

	_, err = runCLI(t, "-db", db, "ticket", "-id", "99", "-dir", dir)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRun_BackupResetPurge(t *testing.T) {
	backupDir := filepath.Join(t.TempDir(), "backup")
	t.Setenv("STORE_BACKUP_DIR", backupDir)
	db, _ := seedStore(t)

	out, err := runCLI(t, "-db", db, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, backupDir)

	_, err = runCLI(t, "-db", db, "purge-orders", "-yes")
	require.NoError(t, err)
	out, err = runCLI(t, "-db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "orders:        0")
	assert.Contains(t, out, "customers:     1")

	out, err = runCLI(t, "-db", db, "reset", "-yes")
	require.NoError(t, err)
	assert.Contains(t, out, "store reset, backup:")
	out, err = runCLI(t, "-db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "customers:     0")
}
