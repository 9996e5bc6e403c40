package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storedesk/internal/health"
	"github.com/vladislavdragonenkov/storedesk/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storedesk/internal/messaging/rabbitmq"
	"github.com/vladislavdragonenkov/storedesk/internal/metrics"
	"github.com/vladislavdragonenkov/storedesk/internal/service/admin"
	"github.com/vladislavdragonenkov/storedesk/internal/service/catalog"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/storedesk/internal/service/notify"
	"github.com/vladislavdragonenkov/storedesk/internal/service/order"
	"github.com/vladislavdragonenkov/storedesk/internal/service/report"
	"github.com/vladislavdragonenkov/storedesk/internal/service/search"
	"github.com/vladislavdragonenkov/storedesk/internal/storage/memory"
	"github.com/vladislavdragonenkov/storedesk/internal/storage/sqlite"
)

// Dependencies содержит собранные сервисы ядра и их инфраструктуру.
type Dependencies struct {
	Catalog  *catalog.Service
	Orders   *order.Manager
	Search   *search.Engine
	Tracker  *lifecycle.Tracker
	Reports  *report.Aggregator
	Admin    *admin.Service
	Notifier *notify.Worker
	Metrics  *metrics.StoreMetrics

	// StorageChecker nil для memory-хранилища.
	StorageChecker healthcheck.Checker

	closers []func() error
}

type storageBundle struct {
	customers  domain.CustomerRepository
	products   domain.ProductRepository
	orders     domain.OrderRepository
	timeline   domain.TimelineRepository
	stats      domain.StatisticsSource
	maintainer domain.Maintainer
	checker    healthcheck.Checker
	closeFn    func() error
}

// NewDependencies собирает зависимости по конфигурации.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	deps := &Dependencies{StorageChecker: storage.checker}
	if storage.closeFn != nil {
		deps.closers = append(deps.closers, storage.closeFn)
	}

	policy, err := lifecycle.PolicyByName(cfg.TransitionPolicy)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}

	deps.Metrics = metrics.NewStoreMetrics()
	urgencyNotifier, publisher, closeNotifier := initNotifier(cfg, logger)
	if closeNotifier != nil {
		deps.closers = append(deps.closers, closeNotifier)
	}

	deps.Catalog = catalog.NewService(storage.customers, storage.products,
		catalog.WithLogger(logger.WithField("layer", "catalog")))

	orderOpts := []order.Option{
		order.WithLogger(logger.WithField("layer", "orders")),
		order.WithPolicy(policy),
		order.WithMetrics(deps.Metrics),
		order.WithTimeline(storage.timeline),
	}
	if publisher != nil {
		orderOpts = append(orderOpts, order.WithPublisher(publisher))
	}
	deps.Orders = order.NewManager(storage.orders, deps.Catalog, orderOpts...)
	deps.Search = search.NewEngine(storage.orders)
	deps.Tracker = lifecycle.NewTracker(storage.orders, nil)
	deps.Reports = report.NewAggregator(storage.stats)
	deps.Admin = admin.NewService(storage.maintainer,
		admin.WithLogger(logger.WithField("layer", "admin")),
		admin.WithBackupDir(cfg.BackupDir),
		admin.WithMetrics(deps.Metrics),
	)
	deps.Notifier = notify.NewWorker(deps.Tracker, urgencyNotifier,
		notify.WithLogger(logger.WithField("layer", "urgency")),
		notify.WithInterval(cfg.UrgencyInterval),
		notify.WithMetrics(deps.Metrics),
	)

	return deps, nil
}

// Close освобождает ресурсы в обратном порядке создания.
func (d *Dependencies) Close() error {
	if d == nil {
		return nil
	}
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (storageBundle, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		logger.Warn("using in-memory storage: data is lost on restart and backups are unavailable")
		return storageBundle{
			customers:  memory.NewCustomerRepository(store),
			products:   memory.NewProductRepository(store),
			orders:     memory.NewOrderRepository(store),
			timeline:   memory.NewTimelineRepository(store),
			stats:      store,
			maintainer: store,
		}, nil
	case StorageDriverSQLite:
		store, err := sqlite.OpenAndMigrate(ctx, cfg.DBPath)
		if err != nil {
			return storageBundle{}, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.WithFields(log.Fields{"path": store.Path(), "driver": sqlite.DriverName}).Info("sqlite storage initialized")
		return storageBundle{
			customers:  sqlite.NewCustomerRepository(store),
			products:   sqlite.NewProductRepository(store),
			orders:     sqlite.NewOrderRepository(store),
			timeline:   sqlite.NewTimelineRepository(store),
			stats:      sqlite.NewStatisticsSource(store),
			maintainer: store,
			checker:    healthcheck.NewPingChecker("sqlite", store),
			closeFn:    store.Close,
		}, nil
	default:
		return storageBundle{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// initNotifier выбирает канал оповещений. Недоступный брокер не мешает старту:
// сервис продолжает работу с оповещениями в лог.
func initNotifier(cfg Config, logger *log.Entry) (domain.UrgencyNotifier, domain.OrderEventPublisher, func() error) {
	fallback := notify.NewLogNotifier(logger.WithField("layer", "notifier"))

	switch cfg.Notifier {
	case NotifierKafka:
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing with log notifier")
			return fallback, nil, nil
		}
		logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		n := kafka.NewNotifier(producer, cfg.KafkaTopic)
		return n, n, producer.Close
	case NotifierAMQP:
		conn, err := rabbitmq.Dial(cfg.AMQPURL)
		if err != nil {
			logger.WithError(err).Warn("failed to connect to rabbitmq, continuing with log notifier")
			return fallback, nil, nil
		}
		logger.WithField("exchange", cfg.AMQPExchange).Info("rabbitmq notifier initialized")
		n := rabbitmq.NewNotifier(conn, cfg.AMQPExchange)
		return n, nil, n.Close
	default:
		return fallback, nil, nil
	}
}
