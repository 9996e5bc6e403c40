package domain

import (
	"context"
	"time"
)

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента; ErrCustomerExists при дубликате имени.
	Create(ctx context.Context, customer Customer) (Customer, error)
	// Update переименовывает/обновляет клиента, найденного по currentName.
	Update(ctx context.Context, currentName string, customer Customer) (Customer, error)
	// GetByName возвращает клиента или ErrCustomerNotFound.
	GetByName(ctx context.Context, name string) (Customer, error)
	// List возвращает всех клиентов по возрастанию имени.
	List(ctx context.Context) ([]Customer, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, currentName string, product Product) (Product, error)
	GetByName(ctx context.Context, name string) (Product, error)
	List(ctx context.Context) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create атомарно сохраняет заголовок, все позиции и события timeline.
	// Возвращает заказ с присвоенными идентификаторами.
	Create(ctx context.Context, order Order, events ...TimelineEvent) (Order, error)
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(ctx context.Context, id int64) (Order, error)
	// UpdateHeader перезаписывает дату доставки и статус; позиции и итог не трогает.
	UpdateHeader(ctx context.Context, id int64, delivery time.Time, status OrderStatus, events ...TimelineEvent) (Order, error)
	// ListSummaries возвращает заголовки заказов (status == "" означает все статусы)
	// по убыванию order_date; внутри одного дня по возрастанию id (порядок вставки).
	ListSummaries(ctx context.Context, status OrderStatus) ([]OrderSummary, error)
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	List(ctx context.Context, orderID int64) ([]TimelineEvent, error)
}

// StatisticsSource снимает данные для сводной статистики.
type StatisticsSource interface {
	Snapshot(ctx context.Context) (StatisticsSnapshot, error)
}

// Maintainer — административные операции над хранилищем целиком.
type Maintainer interface {
	// Backup копирует хранилище в новый файл внутри dir и возвращает его путь.
	Backup(ctx context.Context, dir string, at time.Time) (string, error)
	// Recreate уничтожает все данные и создаёт базовую схему заново.
	Recreate(ctx context.Context) error
	// PurgeOrders удаляет все заказы и позиции и сбрасывает их счётчики.
	PurgeOrders(ctx context.Context) error
}
