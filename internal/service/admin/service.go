// Package admin выполняет резервное копирование и разрушительные операции над хранилищем.
package admin

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/metrics"
)

// DefaultBackupDir задаёт каталог копий по умолчанию.
const DefaultBackupDir = "backup"

// Options задает параметры Service.
type Options struct {
	Logger    *log.Entry
	BackupDir string
	Clock     func() time.Time
	Metrics   *metrics.StoreMetrics
}

// Option настраивает Service.
type Option func(*Options)

// WithLogger задает logger.
func WithLogger(logger *log.Entry) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithBackupDir задает каталог резервных копий.
func WithBackupDir(dir string) Option {
	return func(o *Options) { o.BackupDir = dir }
}

// WithClock подменяет источник времени для имён копий.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Clock = now }
}

// WithMetrics включает метрики.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// Service выполняет административные операции.
type Service struct {
	store     domain.Maintainer
	backupDir string
	now       func() time.Time
	metrics   *metrics.StoreMetrics
	logger    *log.Entry
}

// NewService создаёт Service.
func NewService(store domain.Maintainer, options ...Option) *Service {
	opts := Options{BackupDir: DefaultBackupDir, Clock: time.Now}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "admin")
	}
	if opts.BackupDir == "" {
		opts.BackupDir = DefaultBackupDir
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Service{
		store:     store,
		backupDir: opts.BackupDir,
		now:       opts.Clock,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
}

// Backup копирует хранилище в новый файл с отметкой времени и возвращает путь.
func (s *Service) Backup(ctx context.Context) (path string, err error) {
	defer func() { s.record("backup", err) }()

	path, err = s.store.Backup(ctx, s.backupDir, s.now())
	if err != nil {
		s.logger.WithError(err).Error("backup failed")
		return "", err
	}
	s.logger.WithField("path", path).Info("backup created")
	return path, nil
}

// Reset делает копию и только после её успеха пересоздаёт хранилище с нуля.
// При неудаче копии данные не трогаются. Возвращает путь к копии.
func (s *Service) Reset(ctx context.Context) (backupPath string, err error) {
	defer func() { s.record("reset", err) }()

	backupPath, err = s.store.Backup(ctx, s.backupDir, s.now())
	if err != nil {
		s.logger.WithError(err).Error("reset aborted: backup failed")
		return "", fmt.Errorf("reset aborted: %w", err)
	}

	if err := s.store.Recreate(ctx); err != nil {
		s.logger.WithError(err).WithField("backup", backupPath).Error("reset failed after backup")
		return backupPath, fmt.Errorf("%w: recreate store: %v", domain.ErrIO, err)
	}

	s.logger.WithField("backup", backupPath).Warn("store reset to empty baseline")
	return backupPath, nil
}

// PurgeOrders удаляет все заказы и позиции и сбрасывает их счётчики.
// В отличие от Reset, копия не делается.
func (s *Service) PurgeOrders(ctx context.Context) (err error) {
	defer func() { s.record("purge_orders", err) }()

	if err = s.store.PurgeOrders(ctx); err != nil {
		s.logger.WithError(err).Error("purge orders failed")
		return fmt.Errorf("%w: purge orders: %v", domain.ErrIO, err)
	}
	s.logger.Warn("all orders purged")
	return nil
}

func (s *Service) record(operation string, err error) {
	if s.metrics != nil {
		s.metrics.RecordAdminOperation(operation, err)
	}
}
