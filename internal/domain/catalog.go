package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer — клиент магазина. Имя уникально, CreatedAt не меняется после создания.
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
}

// Normalize обрезает пробелы и проверяет обязательные поля.
func (c Customer) Normalize() (Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" {
		return Customer{}, ErrCustomerNameRequired
	}
	return c, nil
}

// Product — товар каталога с неотрицательной ценой.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Normalize обрезает пробелы и проверяет обязательные поля.
func (p Product) Normalize() (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Product{}, ErrProductNameRequired
	}
	if p.Price.IsNegative() {
		return Product{}, ErrPriceInvalid
	}
	return p, nil
}

// ProductRef — пара (имя, цена) для списков выбора.
type ProductRef struct {
	Name  string
	Price decimal.Decimal
}

// ParsePrice разбирает цену из текста; допускает десятичную запятую ("5,00").
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return decimal.Zero, ErrPriceInvalid
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, ErrPriceInvalid
	}
	return price, nil
}
