package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

func newTestProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()
	mockProducer := mocks.NewSyncProducer(t, nil)
	return NewProducerWithSyncProducer(mockProducer, log.WithField("component", "kafka-producer-test")), mockProducer
}

func TestProducer_PublishEvent(t *testing.T) {
	producer, mockProducer := newTestProducer(t)
	mockProducer.ExpectSendMessageAndSucceed()

	err := producer.PublishEvent(context.Background(), TopicNotifications, "urgency", map[string]int{"overdue": 1})
	require.NoError(t, err)
	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	producer, mockProducer := newTestProducer(t)
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishEvent(context.Background(), TopicNotifications, "urgency", map[string]int{})
	require.Error(t, err)
	require.NoError(t, mockProducer.Close())
}

func TestProducer_PublishEvent_CanceledContext(t *testing.T) {
	producer, mockProducer := newTestProducer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := producer.PublishEvent(ctx, TopicNotifications, "urgency", nil)
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, mockProducer.Close())
}

func TestNotifier_Notify(t *testing.T) {
	producer, mockProducer := newTestProducer(t)
	checkedAt := time.Date(2030, 12, 1, 9, 0, 0, 0, time.UTC)

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event UrgencyEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeUrgencySnapshot || event.Overdue != 2 || event.EventID == "" {
			return errors.New("unexpected urgency event")
		}
		if !event.CheckedAt.Equal(checkedAt) {
			return errors.New("checked_at not carried over")
		}
		return nil
	})

	n := NewNotifier(producer, "")
	err := n.Notify(context.Background(), domain.UrgencyReport{Overdue: 2, TotalPending: 2, CheckedAt: checkedAt})
	require.NoError(t, err)
	require.NoError(t, mockProducer.Close())
}

func TestNotifier_PublishOrderEvent(t *testing.T) {
	producer, mockProducer := newTestProducer(t)

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeOrderCreated || event.OrderID != 7 {
			return errors.New("unexpected order event")
		}
		if event.Total != "15.00" || event.DeliveryDate != "2030-12-31" || event.ItemCount != 1 {
			return errors.New("order fields not carried over")
		}
		return nil
	})

	order := domain.Order{
		ID:           7,
		CustomerName: "Ana",
		OrderDate:    time.Date(2030, 12, 1, 0, 0, 0, 0, time.Local),
		DeliveryDate: time.Date(2030, 12, 31, 0, 0, 0, 0, time.Local),
		Status:       domain.OrderStatusPending,
		Total:        decimal.RequireFromString("15"),
		Items:        []domain.OrderItem{{ProductName: "Coffee", Quantity: 3}},
	}
	require.NoError(t, NewNotifier(producer, "orders").PublishOrderEvent(context.Background(), domain.EventOrderCreated, order))
	require.NoError(t, mockProducer.Close())
}

func TestNotifier_Uninitialized(t *testing.T) {
	var n *Notifier
	assert.Error(t, n.Notify(context.Background(), domain.UrgencyReport{}))
	assert.Error(t, NewNotifier(nil, "").PublishOrderEvent(context.Background(), domain.EventOrderUpdated, domain.Order{}))
}

func TestNewUrgencyEvent(t *testing.T) {
	event := NewUrgencyEvent(domain.UrgencyReport{DueToday: 1, TotalPending: 1})

	assert.Equal(t, EventTypeUrgencySnapshot, event.EventType)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "1 delivery(ies) due today", event.Summary)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Second)
}
