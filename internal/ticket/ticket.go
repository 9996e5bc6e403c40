// Package ticket печатает заказ в виде текстового ticket фиксированной ширины.
package ticket

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// Width задаёт ширину ticket в символах.
const Width = 40

const title = "ORDER TICKET"

// Options задает оформление ticket.
type Options struct {
	// CurrencySymbol печатается перед суммами ("R$", "$"), пустой означает без символа.
	CurrencySymbol string
}

// Render формирует ticket для уже загруженного заказа. Функция чистая.
func Render(order domain.Order, opts Options) string {
	rule := strings.Repeat("=", Width)
	thin := strings.Repeat("-", Width)

	var b strings.Builder
	line := func(format string, args ...any) {
		b.WriteString(fmt.Sprintf(format, args...))
		b.WriteByte('\n')
	}

	line("%s", rule)
	line("%s", center(title))
	line("%s", rule)
	line("Order #%d", order.ID)
	line("Customer: %s", order.CustomerName)
	line("Date: %s", domain.FormatDisplayDate(order.OrderDate))
	line("Delivery: %s", domain.FormatDisplayDate(order.DeliveryDate))
	line("Status: %s", strings.ToUpper(string(order.Status)))
	line("%s", thin)
	line("ITEMS:")
	for _, item := range order.Items {
		line("%s", item.ProductName)
		line("  %d x %s = %s", item.Quantity, money(item.UnitPrice, opts), money(item.LineTotal, opts))
	}
	line("%s", thin)
	line("%s", rightAlign("Total: "+money(order.Total, opts)))
	line("%s", rule)
	return b.String()
}

// FileName возвращает имя файла экспорта для заказа.
func FileName(order domain.Order) string {
	return fmt.Sprintf("order_%d.txt", order.ID)
}

// Export пишет ticket в dir и возвращает путь к файлу.
func Export(dir string, order domain.Order, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create ticket directory: %v", domain.ErrIO, err)
	}
	path := filepath.Join(dir, FileName(order))
	if err := os.WriteFile(path, []byte(Render(order, opts)), 0o644); err != nil {
		return "", fmt.Errorf("%w: write ticket: %v", domain.ErrIO, err)
	}
	return path, nil
}

func money(v decimal.Decimal, opts Options) string {
	if opts.CurrencySymbol == "" {
		return v.StringFixed(2)
	}
	return opts.CurrencySymbol + " " + v.StringFixed(2)
}

// center и rightAlign считают ширину в рунах: "€" и "Â" занимают одну колонку.
func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= Width {
		return s
	}
	return strings.Repeat(" ", (Width-n)/2) + s
}

func rightAlign(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= Width {
		return s
	}
	return strings.Repeat(" ", Width-n) + s
}
