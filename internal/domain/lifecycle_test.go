package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

func TestClassifyUrgency(t *testing.T) {
	today := time.Date(2031, 3, 10, 15, 30, 0, 0, time.Local)
	day := func(offset int) time.Time {
		return time.Date(2031, 3, 10+offset, 0, 0, 0, 0, time.Local)
	}

	tests := []struct {
		name     string
		status   domain.OrderStatus
		delivery time.Time
		want     domain.Urgency
	}{
		{name: "yesterday is overdue", status: domain.OrderStatusPending, delivery: day(-1), want: domain.UrgencyOverdue},
		{name: "last month is overdue", status: domain.OrderStatusPending, delivery: day(-30), want: domain.UrgencyOverdue},
		{name: "today", status: domain.OrderStatusPending, delivery: day(0), want: domain.UrgencyDueToday},
		{name: "tomorrow", status: domain.OrderStatusPending, delivery: day(1), want: domain.UrgencyDueTomorrow},
		{name: "day after tomorrow", status: domain.OrderStatusPending, delivery: day(2), want: domain.UrgencyNone},
		{name: "delivered excluded", status: domain.OrderStatusDelivered, delivery: day(-1), want: domain.UrgencyNone},
		{name: "cancelled excluded", status: domain.OrderStatusCancelled, delivery: day(0), want: domain.UrgencyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyUrgency(tt.status, tt.delivery, today))
		})
	}
}

func TestNewOrderFilter(t *testing.T) {
	f, err := domain.NewOrderFilter(" ana ", "all")
	require.NoError(t, err)
	assert.Equal(t, "ana", f.Term)
	assert.Empty(t, f.Status)

	f, err = domain.NewOrderFilter("", "PENDING")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, f.Status)

	_, err = domain.NewOrderFilter("", "archived")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestOrderFilterMatches(t *testing.T) {
	order := domain.OrderSummary{ID: 124, CustomerName: "Érica Souza", Status: domain.OrderStatusPending}

	tests := []struct {
		name   string
		filter domain.OrderFilter
		want   bool
	}{
		{name: "empty filter", filter: domain.OrderFilter{}, want: true},
		{name: "name substring any case", filter: domain.OrderFilter{Term: "ÉRICA"}, want: true},
		{name: "id substring", filter: domain.OrderFilter{Term: "12"}, want: true},
		{name: "status mismatch", filter: domain.OrderFilter{Term: "erica", Status: domain.OrderStatusDelivered}, want: false},
		{name: "term and status", filter: domain.OrderFilter{Term: "souza", Status: domain.OrderStatusPending}, want: true},
		{name: "no match", filter: domain.OrderFilter{Term: "bruno"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(order))
		})
	}
}
