// Package dto описывает JSON-представления заказов и каталога для внешних поверхностей.
package dto

import (
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRequest: цена передаётся текстом ("5.00" или "5,00").
type ProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type ProductResponse struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type OrderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest: DeliveryDate в формате dd/mm/yyyy.
type CreateOrderRequest struct {
	Customer     string             `json:"customer"`
	DeliveryDate string             `json:"delivery_date"`
	Items        []OrderItemRequest `json:"items"`
}

type UpdateOrderRequest struct {
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
}

type OrderItemResponse struct {
	ID        int64  `json:"id"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type OrderResponse struct {
	ID           int64               `json:"id"`
	Customer     string              `json:"customer"`
	OrderDate    string              `json:"order_date"`
	DeliveryDate string              `json:"delivery_date"`
	Status       string              `json:"status"`
	Total        string              `json:"total"`
	Items        []OrderItemResponse `json:"items"`
}

type OrderSummaryResponse struct {
	ID           int64  `json:"id"`
	Customer     string `json:"customer"`
	OrderDate    string `json:"order_date"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
	Total        string `json:"total"`
}

type TimelineEventResponse struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred"`
}

type StatisticsResponse struct {
	CustomerCount     int    `json:"customer_count"`
	ProductCount      int    `json:"product_count"`
	OrderCount        int    `json:"order_count"`
	PendingCount      int    `json:"pending_count"`
	TotalValue        string `json:"total_value"`
	AverageOrderValue string `json:"average_order_value"`
}

type BackupResponse struct {
	Path string `json:"path"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func FromCustomer(c domain.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address, CreatedAt: c.CreatedAt}
}

func FromProduct(p domain.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price.StringFixed(2)}
}

func FromProductRefs(refs []domain.ProductRef) []ProductResponse {
	out := make([]ProductResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, ProductResponse{Name: r.Name, Price: r.Price.StringFixed(2)})
	}
	return out
}

func FromOrder(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        it.ID,
			Product:   it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			LineTotal: it.LineTotal.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:           o.ID,
		Customer:     o.CustomerName,
		OrderDate:    domain.FormatDisplayDate(o.OrderDate),
		DeliveryDate: domain.FormatDisplayDate(o.DeliveryDate),
		Status:       string(o.Status),
		Total:        o.Total.StringFixed(2),
		Items:        items,
	}
}

func FromSummaries(list []domain.OrderSummary) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, OrderSummaryResponse{
			ID:           s.ID,
			Customer:     s.CustomerName,
			OrderDate:    domain.FormatDisplayDate(s.OrderDate),
			DeliveryDate: domain.FormatDisplayDate(s.DeliveryDate),
			Status:       string(s.Status),
			Total:        s.Total.StringFixed(2),
		})
	}
	return out
}

func FromTimeline(events []domain.TimelineEvent) []TimelineEventResponse {
	out := make([]TimelineEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TimelineEventResponse{Type: e.Type, Reason: e.Reason, Occurred: e.Occurred})
	}
	return out
}

func FromStatistics(s domain.Statistics) StatisticsResponse {
	return StatisticsResponse{
		CustomerCount:     s.CustomerCount,
		ProductCount:      s.ProductCount,
		OrderCount:        s.OrderCount,
		PendingCount:      s.PendingCount,
		TotalValue:        s.TotalValue.StringFixed(2),
		AverageOrderValue: s.AverageOrderValue.StringFixed(2),
	}
}

// NewError строит тело ошибки с категорией (validation, not_found, ...).
func NewError(err error) ErrorResponse {
	return ErrorResponse{Error: err.Error(), Kind: string(domain.KindOf(err))}
}
