// Package notify периодически проверяет срочные доставки и оповещает о них.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/metrics"
)

const defaultInterval = 5 * time.Minute

var urgencyChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storedesk_urgency_checks_total",
	Help: "Total number of urgency checks grouped by result.",
}, []string{"result"})

// UrgencyCounter считает срочные доставки.
type UrgencyCounter interface {
	CountUrgent(ctx context.Context) (domain.UrgencyReport, error)
}

// Options задает параметры воркера оповещений.
type Options struct {
	Logger   *log.Entry
	Interval time.Duration
	Metrics  *metrics.StoreMetrics
}

// Option настраивает Worker.
type Option func(*Options)

// WithLogger задает logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithInterval задает интервал между проверками.
func WithInterval(interval time.Duration) Option {
	return func(opts *Options) {
		opts.Interval = interval
	}
}

// WithMetrics включает gauge срочности.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// Worker периодически считает срочные доставки и передаёт отчёт notifier.
type Worker struct {
	counter  UrgencyCounter
	notifier domain.UrgencyNotifier
	metrics  *metrics.StoreMetrics
	logger   *log.Entry
	interval time.Duration
}

// NewWorker создает воркер оповещений.
func NewWorker(counter UrgencyCounter, notifier domain.UrgencyNotifier, options ...Option) *Worker {
	opts := Options{Interval: defaultInterval}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "urgency-notify-worker")
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}

	return &Worker{
		counter:  counter,
		notifier: notifier,
		metrics:  opts.Metrics,
		logger:   logger,
		interval: opts.Interval,
	}
}

// Run выполняет первую проверку сразу, затем по таймеру до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.counter == nil || w.notifier == nil {
		w.logger.Warn("urgency notify worker is disabled: counter or notifier is nil")
		return
	}

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Worker) check(ctx context.Context) {
	_, err := w.CheckOnce(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		urgencyChecksTotal.WithLabelValues("error").Inc()
		w.logger.WithError(err).Warn("urgency check failed")
		return
	}
	urgencyChecksTotal.WithLabelValues("ok").Inc()
}

// CheckOnce считает срочные доставки и оповещает, если они есть.
func (w *Worker) CheckOnce(ctx context.Context) (domain.UrgencyReport, error) {
	report, err := w.counter.CountUrgent(ctx)
	if err != nil {
		return domain.UrgencyReport{}, err
	}
	if w.metrics != nil {
		w.metrics.SetUrgency(report)
	}
	if !report.Urgent() {
		w.logger.WithField("pending", report.TotalPending).Debug("no urgent deliveries")
		return report, nil
	}
	if err := w.notifier.Notify(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}
