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

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт SQLite-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (name, phone, address, created_at)
		VALUES (?, ?, ?, ?)
	`, customer.Name, customer.Phone, customer.Address, customer.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerExists, customer.Name)
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customer last insert id: %w", err)
	}
	customer.ID = id
	return customer, nil
}

func (r *customerRepository) Update(ctx context.Context, currentName string, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = ?, phone = ?, address = ?
		WHERE name = ?
	`, customer.Name, customer.Phone, customer.Address, currentName)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerExists, customer.Name)
		}
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerNotFound, currentName)
	}

	return r.GetByName(ctx, customer.Name)
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address, created_at
		FROM customers
		WHERE name = ?
	`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("%w: %q", domain.ErrCustomerNotFound, name)
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, address, created_at
		FROM customers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}
	return customers, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var (
		customer  domain.Customer
		createdAt string
	)
	if err := row.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Address, &createdAt); err != nil {
		return domain.Customer{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("parse customer created_at %q: %w", createdAt, err)
	}
	customer.CreatedAt = parsed
	return customer, nil
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт SQLite-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (name, price) VALUES (?, ?)
	`, product.Name, product.Price.String())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductExists, product.Name)
		}
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, fmt.Errorf("product last insert id: %w", err)
	}
	product.ID = id
	return product, nil
}

func (r *productRepository) Update(ctx context.Context, currentName string, product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET name = ?, price = ? WHERE name = ?
	`, product.Name, product.Price.String(), currentName)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductExists, product.Name)
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, currentName)
	}

	return r.GetByName(ctx, product.Name)
}

func (r *productRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id, name, price FROM products WHERE name = ?
	`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, name)
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price FROM products ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product domain.Product
		price   string
	)
	if err := row.Scan(&product.ID, &product.Name, &price); err != nil {
		return domain.Product{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse product price %q: %w", price, err)
	}
	product.Price = parsed
	return product, nil
}

var (
	_ domain.CustomerRepository = (*customerRepository)(nil)
	_ domain.ProductRepository  = (*productRepository)(nil)
)
