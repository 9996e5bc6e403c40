package lifecycle

import (
	"fmt"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// TransitionPolicy решает, допустим ли переход статуса заказа.
type TransitionPolicy interface {
	Check(from, to domain.OrderStatus) error
}

// PermissivePolicy разрешает любой переход между допустимыми статусами,
// в том числе редактирование доставленных и отменённых заказов.
type PermissivePolicy struct{}

// Check проверяет только то, что целевой статус допустим.
func (PermissivePolicy) Check(_, to domain.OrderStatus) error {
	if !to.Valid() {
		return domain.ErrStatusInvalid
	}
	return nil
}

// StrictPolicy запрещает уход из конечных статусов (delivered, cancelled).
type StrictPolicy struct{}

// Check отклоняет смену статуса у заказа в конечном статусе.
func (StrictPolicy) Check(from, to domain.OrderStatus) error {
	if !to.Valid() {
		return domain.ErrStatusInvalid
	}
	if from.Terminal() && from != to {
		return fmt.Errorf("%w: %s -> %s", domain.ErrTransitionForbidden, from, to)
	}
	return nil
}

// PolicyByName возвращает политику по имени из конфигурации.
func PolicyByName(name string) (TransitionPolicy, error) {
	switch name {
	case "", "permissive":
		return PermissivePolicy{}, nil
	case "strict":
		return StrictPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown transition policy %q", name)
	}
}
