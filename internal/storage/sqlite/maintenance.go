package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
)

const (
	backupPrefix     = "store_"
	backupTimeLayout = "20060102_150405"
	backupExt        = ".db"
	maxBackupSuffix  = 100
)

// BackupFileName возвращает имя файла копии для момента at: store_<YYYYMMDD_HHMMSS>.db.
func BackupFileName(at time.Time) string {
	return backupPrefix + at.Format(backupTimeLayout) + backupExt
}

// Backup пишет полную согласованную копию базы в dir через VACUUM INTO.
// Исходный файл не изменяется. Каталог создаётся при необходимости.
func (s *Store) Backup(ctx context.Context, dir string, at time.Time) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("%w: sqlite store is not initialized", domain.ErrBackupFailed)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create backup directory %s: %v", domain.ErrBackupFailed, dir, err)
	}

	target, err := nextBackupPath(dir, at)
	if err != nil {
		return "", err
	}

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, target); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("%w: copy store to %s: %v", domain.ErrBackupFailed, target, err)
	}

	return target, nil
}

// nextBackupPath подбирает свободное имя: две копии в одну секунду получают суффикс _N.
func nextBackupPath(dir string, at time.Time) (string, error) {
	base := backupPrefix + at.Format(backupTimeLayout)
	candidate := filepath.Join(dir, base+backupExt)
	for i := 1; i <= maxBackupSuffix; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: stat %s: %v", domain.ErrBackupFailed, candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, backupExt))
	}
	return "", fmt.Errorf("%w: too many backups for %s", domain.ErrBackupFailed, base)
}

// Recreate удаляет всю схему и создаёт её заново в одной транзакции.
// Счётчики AUTOINCREMENT начинаются с 1, так как строки sqlite_sequence
// удаляются вместе с таблицами.
func (s *Store) Recreate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errStoreNotInitialized
	}

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, migrationTableDDL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		for i := len(migrations) - 1; i >= 0; i-- {
			if _, err := tx.ExecContext(ctx, migrations[i].DownSQL); err != nil {
				return fmt.Errorf("drop schema %s: %w", migrations[i], err)
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
			return fmt.Errorf("clear migration records: %w", err)
		}
		for _, m := range migrations {
			if err := migrateStep(ctx, tx, m, true); err != nil {
				return err
			}
		}
		return nil
	})
}

// PurgeOrders удаляет все заказы, позиции и события и сбрасывает их счётчики.
// Клиенты и товары не затрагиваются.
func (s *Store) PurgeOrders(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM order_events`,
			`DELETE FROM order_items`,
			`DELETE FROM orders`,
			`DELETE FROM sqlite_sequence WHERE name IN ('orders', 'order_items', 'order_events')`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("purge orders: %w", err)
			}
		}
		return nil
	})
}

var _ domain.Maintainer = (*Store)(nil)
