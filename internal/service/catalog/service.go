// Package catalog разрешает ссылки на клиентов и товары и ведёт их справочники.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// Service управляет справочником клиентов и товаров.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	now       func() time.Time
	logger    *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задает logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock подменяет источник текущего времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService создаёт справочник поверх репозиториев.
func NewService(customers domain.CustomerRepository, products domain.ProductRepository, opts ...Option) *Service {
	s := &Service{
		customers: customers,
		products:  products,
		now:       time.Now,
		logger:    log.WithField("component", "catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCustomers возвращает имена клиентов по возрастанию. Для пустого каталога возвращается пустой срез.
func (s *Service) ListCustomers(ctx context.Context) ([]string, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	names := make([]string, 0, len(customers))
	for _, c := range customers {
		names = append(names, c.Name)
	}
	return names, nil
}

// ListProducts возвращает пары (имя, цена) по возрастанию имени.
func (s *Service) ListProducts(ctx context.Context) ([]domain.ProductRef, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	refs := make([]domain.ProductRef, 0, len(products))
	for _, p := range products {
		refs = append(refs, domain.ProductRef{Name: p.Name, Price: p.Price})
	}
	return refs, nil
}

// Customers возвращает полные записи клиентов по возрастанию имени.
func (s *Service) Customers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// ResolveCustomer ищет клиента по имени (пробелы по краям игнорируются).
func (s *Service) ResolveCustomer(ctx context.Context, name string) (domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Customer{}, domain.ErrCustomerNameRequired
	}
	return s.customers.GetByName(ctx, name)
}

// ResolveProduct ищет товар по имени (пробелы по краям игнорируются).
func (s *Service) ResolveProduct(ctx context.Context, name string) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	return s.products.GetByName(ctx, name)
}

// CreateCustomer регистрирует клиента; CreatedAt ставится здесь и больше не меняется.
func (s *Service) CreateCustomer(ctx context.Context, name, phone, address string) (domain.Customer, error) {
	customer, err := domain.Customer{Name: name, Phone: phone, Address: address}.Normalize()
	if err != nil {
		return domain.Customer{}, err
	}
	customer.CreatedAt = s.now()

	created, err := s.customers.Create(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	s.logger.WithField("customer", created.Name).Info("customer created")
	return created, nil
}

// UpdateCustomer обновляет клиента currentName. Переименование в занятое имя даёт ErrCustomerExists.
// Прошлые заказы хранят снимок имени и не переименовываются.
func (s *Service) UpdateCustomer(ctx context.Context, currentName, name, phone, address string) (domain.Customer, error) {
	customer, err := domain.Customer{Name: name, Phone: phone, Address: address}.Normalize()
	if err != nil {
		return domain.Customer{}, err
	}
	currentName = strings.TrimSpace(currentName)

	updated, err := s.customers.Update(ctx, currentName, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	s.logger.WithFields(log.Fields{"from": currentName, "to": updated.Name}).Info("customer updated")
	return updated, nil
}

// CreateProduct добавляет товар в каталог.
func (s *Service) CreateProduct(ctx context.Context, name string, price string) (domain.Product, error) {
	parsed, err := domain.ParsePrice(price)
	if err != nil {
		return domain.Product{}, err
	}
	product, err := domain.Product{Name: name, Price: parsed}.Normalize()
	if err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.WithFields(log.Fields{"product": created.Name, "price": created.Price.StringFixed(2)}).Info("product created")
	return created, nil
}

// UpdateProduct меняет имя и/или цену товара. Уже созданные позиции заказов не меняются.
func (s *Service) UpdateProduct(ctx context.Context, currentName, name, price string) (domain.Product, error) {
	parsed, err := domain.ParsePrice(price)
	if err != nil {
		return domain.Product{}, err
	}
	product, err := domain.Product{Name: name, Price: parsed}.Normalize()
	if err != nil {
		return domain.Product{}, err
	}
	currentName = strings.TrimSpace(currentName)

	updated, err := s.products.Update(ctx, currentName, product)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.WithFields(log.Fields{"from": currentName, "to": updated.Name}).Info("product updated")
	return updated, nil
}
