package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Каждая конкретная ошибка оборачивает ровно одну из них.
var (
	// ErrValidation — некорректный или отсутствующий ввод.
	ErrValidation = errors.New("validation error")
	// ErrNotFound — ссылка на несуществующий заказ, клиента или товар.
	ErrNotFound = errors.New("not found")
	// ErrConflict — дубликат имени клиента или товара.
	ErrConflict = errors.New("conflict")
	// ErrIO — сбой файловой системы или файла хранилища.
	ErrIO = errors.New("io error")
)

var (
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = fmt.Errorf("%w: customer name is required", ErrValidation)
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = fmt.Errorf("%w: product name is required", ErrValidation)
	// Ошибка отрицательной или нечитаемой цены товара.
	ErrPriceInvalid = fmt.Errorf("%w: price must be a non-negative decimal", ErrValidation)
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = fmt.Errorf("%w: item price must be non-negative", ErrValidation)
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	// Ошибка индекса позиции черновика вне диапазона.
	ErrItemIndexOutOfRange = fmt.Errorf("%w: item index out of range", ErrValidation)
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrTotalMismatch = fmt.Errorf("%w: order total does not match items sum", ErrValidation)
	// Ошибка разбора даты в формате dd/mm/yyyy.
	ErrDateInvalid = fmt.Errorf("%w: date must use dd/mm/yyyy format", ErrValidation)
	// Ошибка недопустимого статуса заказа.
	ErrStatusInvalid = fmt.Errorf("%w: status must be one of pending, delivered, cancelled", ErrValidation)
	// Ошибка ссылки на неизвестного клиента при создании заказа.
	ErrUnknownCustomer = fmt.Errorf("%w: customer does not exist", ErrValidation)
	// Ошибка ссылки на неизвестный товар при добавлении позиции.
	ErrUnknownProduct = fmt.Errorf("%w: product does not exist", ErrValidation)
	// ErrTransitionForbidden — переход статуса запрещён политикой жизненного цикла.
	ErrTransitionForbidden = fmt.Errorf("%w: status transition is not allowed", ErrValidation)

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	// ErrCustomerNotFound возвращается, если клиент не найден.
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	// ErrProductNotFound возвращается, если товар не найден.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

	// ErrCustomerExists: клиент с таким именем уже есть.
	ErrCustomerExists = fmt.Errorf("%w: customer name already exists", ErrConflict)
	// ErrProductExists: товар с таким именем уже есть.
	ErrProductExists = fmt.Errorf("%w: product name already exists", ErrConflict)

	// ErrBackupFailed: резервная копия не создана.
	ErrBackupFailed = fmt.Errorf("%w: backup failed", ErrIO)
	// ErrBackupUnsupported — хранилище не умеет делать резервные копии (in-memory).
	ErrBackupUnsupported = fmt.Errorf("%w: store does not support backups", ErrIO)
)

// ErrorKind классифицирует ошибку для вызывающих слоёв (HTTP, MCP, CLI).
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindIO         ErrorKind = "io"
	KindInternal   ErrorKind = "internal"
)

// KindOf возвращает категорию ошибки; неизвестные ошибки считаются внутренними.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindInternal
	}
}

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
