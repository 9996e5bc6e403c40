package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// ProductResolver ищет товар по имени.
type ProductResolver interface {
	ResolveProduct(ctx context.Context, name string) (domain.Product, error)
}

// Draft — черновик заказа в памяти: упорядоченные позиции и текущий итог.
// Не потокобезопасен; принадлежит одному вызывающему.
type Draft struct {
	products ProductResolver
	items    []domain.DraftItem
	total    decimal.Decimal
}

// NewDraft создаёт пустой черновик.
func NewDraft(products ProductResolver) *Draft {
	return &Draft{products: products, total: decimal.Zero}
}

// AddItem добавляет позицию по текущей цене товара.
func (d *Draft) AddItem(ctx context.Context, productName string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrItemQtyInvalid
	}
	product, err := d.products.ResolveProduct(ctx, productName)
	if err != nil {
		if domain.IsNotFound(err) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownProduct, productName)
		}
		return err
	}

	d.items = append(d.items, domain.DraftItem{
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	})
	d.recompute()
	return nil
}

// RemoveItem удаляет позицию по индексу.
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.items) {
		return fmt.Errorf("%w: %d", domain.ErrItemIndexOutOfRange, index)
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	d.recompute()
	return nil
}

// Total возвращает текущий итог; 0 для пустого черновика.
func (d *Draft) Total() decimal.Decimal {
	return d.total
}

// Items возвращает копию позиций черновика.
func (d *Draft) Items() []domain.DraftItem {
	out := make([]domain.DraftItem, len(d.items))
	copy(out, d.items)
	return out
}

// Len возвращает количество позиций.
func (d *Draft) Len() int {
	return len(d.items)
}

// Reset очищает черновик.
func (d *Draft) Reset() {
	d.items = nil
	d.total = decimal.Zero
}

func (d *Draft) recompute() {
	total := decimal.Zero
	for _, item := range d.items {
		total = total.Add(item.LineTotal())
	}
	d.total = total
}
