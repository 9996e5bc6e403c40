package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

type stubLister struct {
	summaries []domain.OrderSummary
	err       error
	gotStatus domain.OrderStatus
}

func (s *stubLister) ListSummaries(_ context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error) {
	s.gotStatus = status
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.OrderSummary, 0, len(s.summaries))
	for _, o := range s.summaries {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestCountUrgent(t *testing.T) {
	now := time.Date(2031, 6, 15, 23, 59, 0, 0, time.Local)
	day := func(offset int) time.Time { return time.Date(2031, 6, 15+offset, 0, 0, 0, 0, time.Local) }

	lister := &stubLister{summaries: []domain.OrderSummary{
		{ID: 1, Status: domain.OrderStatusPending, DeliveryDate: day(-1)},
		{ID: 2, Status: domain.OrderStatusPending, DeliveryDate: day(-10)},
		{ID: 3, Status: domain.OrderStatusPending, DeliveryDate: day(0)},
		{ID: 4, Status: domain.OrderStatusPending, DeliveryDate: day(1)},
		{ID: 5, Status: domain.OrderStatusPending, DeliveryDate: day(5)},
		{ID: 6, Status: domain.OrderStatusDelivered, DeliveryDate: day(-1)},
		{ID: 7, Status: domain.OrderStatusCancelled, DeliveryDate: day(0)},
	}}

	report, err := NewTracker(lister, func() time.Time { return now }).CountUrgent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, lister.gotStatus)
	assert.Equal(t, 2, report.Overdue)
	assert.Equal(t, 1, report.DueToday)
	assert.Equal(t, 1, report.DueTomorrow)
	assert.Equal(t, 5, report.TotalPending)
	assert.True(t, report.CheckedAt.Equal(now))
}

func TestCountUrgent_NoPendingOrders(t *testing.T) {
	report, err := NewTracker(&stubLister{}, nil).CountUrgent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.UrgencyReport{CheckedAt: report.CheckedAt}, report)
	assert.Equal(t, "no urgent deliveries", Summary(report))
}

func TestCountUrgent_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewTracker(&stubLister{err: boom}, nil).CountUrgent(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSummary(t *testing.T) {
	text := Summary(domain.UrgencyReport{Overdue: 2, DueTomorrow: 1, TotalPending: 4})
	assert.Equal(t, "2 overdue order(s)\n1 delivery(ies) due tomorrow", text)
}

func TestPolicies(t *testing.T) {
	permissive := PermissivePolicy{}
	assert.NoError(t, permissive.Check(domain.OrderStatusDelivered, domain.OrderStatusPending))
	assert.NoError(t, permissive.Check(domain.OrderStatusCancelled, domain.OrderStatusDelivered))
	assert.ErrorIs(t, permissive.Check(domain.OrderStatusPending, "shipped"), domain.ErrStatusInvalid)

	strict := StrictPolicy{}
	assert.NoError(t, strict.Check(domain.OrderStatusPending, domain.OrderStatusDelivered))
	assert.NoError(t, strict.Check(domain.OrderStatusDelivered, domain.OrderStatusDelivered))
	err := strict.Check(domain.OrderStatusDelivered, domain.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrTransitionForbidden)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	p, err := PolicyByName("strict")
	require.NoError(t, err)
	assert.IsType(t, StrictPolicy{}, p)
	_, err = PolicyByName("lenient")
	assert.Error(t, err)
}
