package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := g.Write(metric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewStoreMetrics(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics.ordersCreated == nil || metrics.ordersUpdated == nil {
		t.Fatal("order counters should not be nil")
	}
	if metrics.adminOps == nil {
		t.Error("adminOps counter should not be nil")
	}
	if metrics.opDuration == nil {
		t.Error("opDuration histogram should not be nil")
	}
	if metrics.urgency == nil {
		t.Error("urgency gauge should not be nil")
	}
}

func TestNewStoreMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewStoreMetricsWithRegisterer(reg)
	second := NewStoreMetricsWithRegisterer(reg)

	first.RecordOrderCreated(nil)
	second.RecordOrderCreated(nil)

	if got := counterValue(t, first.ordersCreated.WithLabelValues("ok")); got != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", got)
	}
}

func TestRecordOrderResults(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOrderCreated(nil)
	metrics.RecordOrderCreated(domain.ErrItemsRequired)
	metrics.RecordOrderUpdated(domain.ErrOrderNotFound)
	metrics.RecordAdminOperation("reset", errors.New("disk"))

	if got := counterValue(t, metrics.ordersCreated.WithLabelValues("ok")); got != 1.0 {
		t.Errorf("expected ok=1, got %f", got)
	}
	if got := counterValue(t, metrics.ordersCreated.WithLabelValues("validation")); got != 1.0 {
		t.Errorf("expected validation=1, got %f", got)
	}
	if got := counterValue(t, metrics.ordersUpdated.WithLabelValues("not_found")); got != 1.0 {
		t.Errorf("expected not_found=1, got %f", got)
	}
	if got := counterValue(t, metrics.adminOps.WithLabelValues("reset", "internal")); got != 1.0 {
		t.Errorf("expected reset/internal=1, got %f", got)
	}
}

func TestSetUrgency(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.SetUrgency(domain.UrgencyReport{Overdue: 3, DueToday: 1, DueTomorrow: 2, TotalPending: 9})
	metrics.ObserveOperation("count_urgent", 10*time.Millisecond)

	if got := gaugeValue(t, metrics.urgency.WithLabelValues("overdue")); got != 3.0 {
		t.Errorf("expected overdue 3, got %f", got)
	}
	if got := gaugeValue(t, metrics.urgency.WithLabelValues("pending")); got != 9.0 {
		t.Errorf("expected pending 9, got %f", got)
	}
}
