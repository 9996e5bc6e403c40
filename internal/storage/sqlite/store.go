package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

const (
	defaultConnTimeout = 5 * time.Second
	opTimeout          = 5 * time.Second
)

// Store оборачивает подключение к файлу SQLite.
//
// Используется одно соединение: SQLite допускает одного писателя, а все
// операции магазина короткие и не держат блокировок между вызовами.
type Store struct {
	db   *sql.DB
	path string
}

// Open открывает (или создаёт) файл хранилища и проверяет доступность базы.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create store directory: %v", domain.ErrIO, err)
		}
	}

	db, err := sql.Open(DriverName, buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %v", domain.ErrIO, err)
	}

	return &Store{db: db, path: path}, nil
}

// OpenAndMigrate открывает хранилище и применяет все up-миграции.
func OpenAndMigrate(ctx context.Context, path string) (*Store, error) {
	store, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path возвращает путь к файлу хранилища.
func (s *Store) Path() string {
	return s.path
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// EnsureSchema применяет все up-миграции.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.MigrateUp(ctx, 0)
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
