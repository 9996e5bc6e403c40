package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/catalog"
	"github.com/vladislavdragonenkov/storedesk/internal/storage/memory"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	store := memory.NewStore()
	clock := func() time.Time { return time.Date(2030, 5, 6, 7, 8, 9, 0, time.UTC) }
	return catalog.NewService(
		memory.NewCustomerRepository(store),
		memory.NewProductRepository(store),
		catalog.WithClock(clock),
	)
}

func TestListsAreEmptyNotErrors(t *testing.T) {
	t.Parallel()

	svc := newService(t)

	customers, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListsAreSortedByName(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	for _, name := range []string{"Carla", "Ana", "Bruno"} {
		_, err := svc.CreateCustomer(ctx, name, "", "")
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, "Tea", "3,50")
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, "Coffee", "5.00")
	require.NoError(t, err)

	customers, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, customers)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Coffee", products[0].Name)
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("3.5")))
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateCustomer(ctx, "  Ana  ", " 555 ", "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, "555", created.Phone)
	assert.Equal(t, 2030, created.CreatedAt.Year())

	_, err = svc.CreateCustomer(ctx, "Ana", "", "")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = svc.CreateCustomer(ctx, "   ", "", "")
	assert.True(t, errors.Is(err, domain.ErrCustomerNameRequired))
}

func TestUpdateCustomer(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()
	_, err := svc.CreateCustomer(ctx, "Ana", "", "")
	require.NoError(t, err)
	_, err = svc.CreateCustomer(ctx, "Bia", "", "")
	require.NoError(t, err)

	_, err = svc.UpdateCustomer(ctx, "Ana", "Bia", "", "")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = svc.UpdateCustomer(ctx, "Zoe", "Zoe", "", "")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.UpdateCustomer(ctx, "Ana", "", "", "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	updated, err := svc.UpdateCustomer(ctx, "Ana", "Ana Paula", "999", "Rua 2")
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", updated.Name)

	_, err = svc.ResolveCustomer(ctx, "Ana")
	assert.True(t, domain.IsNotFound(err))
	resolved, err := svc.ResolveCustomer(ctx, " Ana Paula ")
	require.NoError(t, err)
	assert.Equal(t, "Rua 2", resolved.Address)
}

func TestProducts(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, "Coffee", "-1")
	assert.True(t, errors.Is(err, domain.ErrPriceInvalid))
	_, err = svc.CreateProduct(ctx, "", "1")
	assert.True(t, errors.Is(err, domain.ErrProductNameRequired))

	_, err = svc.CreateProduct(ctx, "Coffee", "5")
	require.NoError(t, err)
	updated, err := svc.UpdateProduct(ctx, "Coffee", "Coffee", "6.25")
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("6.25")))

	product, err := svc.ResolveProduct(ctx, "Coffee")
	require.NoError(t, err)
	assert.Equal(t, updated.ID, product.ID)

	_, err = svc.ResolveProduct(ctx, "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
