package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// customerRepositoryInMemory — in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	store *Store
}

// NewCustomerRepository возвращает репозиторий клиентов поверх store.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepositoryInMemory{store: store}
}

func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.customers[customer.Name]; exists {
		return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerExists, customer.Name)
	}
	r.store.lastCustomerID++
	customer.ID = r.store.lastCustomerID
	r.store.customers[customer.Name] = customer
	return customer, nil
}

func (r *customerRepositoryInMemory) Update(_ context.Context, currentName string, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.customers[currentName]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerNotFound, currentName)
	}
	if customer.Name != currentName {
		if _, taken := r.store.customers[customer.Name]; taken {
			return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerExists, customer.Name)
		}
	}

	// ID и CreatedAt не меняются при обновлении.
	customer.ID = current.ID
	customer.CreatedAt = current.CreatedAt
	delete(r.store.customers, currentName)
	r.store.customers[customer.Name] = customer
	return customer, nil
}

func (r *customerRepositoryInMemory) GetByName(_ context.Context, name string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[name]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerNotFound, name)
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) List(context.Context) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.store.customers))
	for _, customer := range r.store.customers {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// productRepositoryInMemory — in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	store *Store
}

// NewProductRepository возвращает репозиторий товаров поверх store.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepositoryInMemory{store: store}
}

func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.products[product.Name]; exists {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductExists, product.Name)
	}
	r.store.lastProductID++
	product.ID = r.store.lastProductID
	r.store.products[product.Name] = product
	return product, nil
}

func (r *productRepositoryInMemory) Update(_ context.Context, currentName string, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.products[currentName]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, currentName)
	}
	if product.Name != currentName {
		if _, taken := r.store.products[product.Name]; taken {
			return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductExists, product.Name)
		}
	}

	product.ID = current.ID
	delete(r.store.products, currentName)
	r.store.products[product.Name] = product
	return product, nil
}

func (r *productRepositoryInMemory) GetByName(_ context.Context, name string) (domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[name]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, name)
	}
	return product, nil
}

func (r *productRepositoryInMemory) List(context.Context) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

var (
	_ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
	_ domain.ProductRepository  = (*productRepositoryInMemory)(nil)
)
