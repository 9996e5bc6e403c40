package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

// StoreMetrics содержит метрики операций магазина.
type StoreMetrics struct {
	// Счётчики операций над заказами
	ordersCreated *prometheus.CounterVec
	ordersUpdated *prometheus.CounterVec

	// Административные операции
	adminOps *prometheus.CounterVec

	// Время выполнения операций ядра
	opDuration *prometheus.HistogramVec

	// Срочность доставок по последней проверке
	urgency *prometheus.GaugeVec
}

// NewStoreMetrics создаёт метрики в DefaultRegisterer.
func NewStoreMetrics() *StoreMetrics {
	return NewStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStoreMetricsWithRegisterer создаёт метрики в заданном реестре.
func NewStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		ordersCreated: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storedesk_orders_created_total",
			Help: "Total number of create_order calls grouped by result",
		}, []string{"result"}),
		ordersUpdated: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storedesk_orders_updated_total",
			Help: "Total number of update_order calls grouped by result",
		}, []string{"result"}),
		adminOps: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storedesk_admin_operations_total",
			Help: "Total number of administrative operations grouped by operation and result",
		}, []string{"operation", "result"}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "storedesk_operation_duration_seconds",
			Help:    "Duration of core store operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		urgency: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "storedesk_pending_orders",
			Help: "Pending orders by urgency class at the last urgency check",
		}, []string{"class"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return string(domain.KindOf(err))
}

// RecordOrderCreated учитывает вызов create_order; err=nil означает успех.
func (m *StoreMetrics) RecordOrderCreated(err error) {
	m.ordersCreated.WithLabelValues(result(err)).Inc()
}

// RecordOrderUpdated учитывает вызов update_order.
func (m *StoreMetrics) RecordOrderUpdated(err error) {
	m.ordersUpdated.WithLabelValues(result(err)).Inc()
}

// RecordAdminOperation учитывает backup/reset/purge.
func (m *StoreMetrics) RecordAdminOperation(operation string, err error) {
	m.adminOps.WithLabelValues(operation, result(err)).Inc()
}

// ObserveOperation записывает длительность операции ядра.
func (m *StoreMetrics) ObserveOperation(operation string, duration time.Duration) {
	m.opDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetUrgency обновляет gauge срочности по последнему отчёту.
func (m *StoreMetrics) SetUrgency(report domain.UrgencyReport) {
	m.urgency.WithLabelValues(string(domain.UrgencyOverdue)).Set(float64(report.Overdue))
	m.urgency.WithLabelValues(string(domain.UrgencyDueToday)).Set(float64(report.DueToday))
	m.urgency.WithLabelValues(string(domain.UrgencyDueTomorrow)).Set(float64(report.DueTomorrow))
	m.urgency.WithLabelValues("pending").Set(float64(report.TotalPending))
}
