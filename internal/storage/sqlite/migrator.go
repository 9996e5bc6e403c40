package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed sql/migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsDir     = "sql/migrations"
	migrationTableDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TEXT NOT NULL
)`
)

// migration — пара up/down скриптов одной версии схемы.
type migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

func (m migration) String() string {
	return fmt.Sprintf("%04d_%s", m.Version, m.Name)
}

// MigrateUp применяет ещё не применённые миграции по возрастанию версии.
// steps<=0 применяет все.
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	migrations, applied, err := s.migrationState(ctx)
	if err != nil {
		return err
	}
	for _, m := range planUp(migrations, applied, steps) {
		if err := withTx(ctx, s.db, func(tx *sql.Tx) error { return migrateStep(ctx, tx, m, true) }); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown откатывает последние применённые миграции. steps<=0 означает один шаг.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	migrations, applied, err := s.migrationState(ctx)
	if err != nil {
		return err
	}
	plan, err := planDown(migrations, applied, steps)
	if err != nil {
		return err
	}
	for _, m := range plan {
		if err := withTx(ctx, s.db, func(tx *sql.Tx) error { return migrateStep(ctx, tx, m, false) }); err != nil {
			return err
		}
	}
	return nil
}

// MigrationStatus возвращает текущую версию и количество применённых миграций.
func (s *Store) MigrationStatus(ctx context.Context) (int64, int, error) {
	if s == nil || s.db == nil {
		return 0, 0, errStoreNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(applied) == 0 {
		return 0, 0, nil
	}
	return applied[len(applied)-1], len(applied), nil
}

var errStoreNotInitialized = errors.New("sqlite store is not initialized")

func (s *Store) migrationState(ctx context.Context) ([]migration, []int64, error) {
	if s == nil || s.db == nil {
		return nil, nil, errStoreNotInitialized
	}
	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		return nil, nil, err
	}
	applied, err := s.appliedVersions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return migrations, applied, nil
}

// appliedVersions возвращает применённые версии по возрастанию.
func (s *Store) appliedVersions(ctx context.Context) ([]int64, error) {
	if _, err := s.db.ExecContext(ctx, migrationTableDDL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	versions := make([]int64, 0)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}
	return versions, nil
}

func planUp(migrations []migration, applied []int64, steps int) []migration {
	done := make(map[int64]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}

	plan := make([]migration, 0, len(migrations))
	for _, m := range migrations {
		if _, ok := done[m.Version]; ok {
			continue
		}
		plan = append(plan, m)
		if steps > 0 && len(plan) == steps {
			break
		}
	}
	return plan
}

func planDown(migrations []migration, applied []int64, steps int) ([]migration, error) {
	known := make(map[int64]migration, len(migrations))
	for _, m := range migrations {
		known[m.Version] = m
	}

	plan := make([]migration, 0, steps)
	for i := len(applied) - 1; i >= 0 && len(plan) < steps; i-- {
		m, ok := known[applied[i]]
		if !ok {
			return nil, fmt.Errorf("cannot roll back unknown migration version %d", applied[i])
		}
		plan = append(plan, m)
	}
	return plan, nil
}

// migrateStep выполняет скрипт и обновляет schema_migrations и PRAGMA user_version
// в той же транзакции.
func migrateStep(ctx context.Context, tx *sql.Tx, m migration, up bool) error {
	direction, script := "down", m.DownSQL
	record, args := `DELETE FROM schema_migrations WHERE version = ?`, []any{m.Version}
	if up {
		direction, script = "up", m.UpSQL
		record = `INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`
		args = []any{m.Version, m.Name, time.Now().UTC().Format(time.RFC3339)}
	}

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("execute %s migration %s: %w", direction, m, err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("record %s migration %s: %w", direction, m, err)
	}
	return syncUserVersion(ctx, tx)
}

// syncUserVersion записывает старшую применённую версию в заголовок файла,
// чтобы её видел sqlite3 CLI без чтения schema_migrations.
func syncUserVersion(ctx context.Context, tx *sql.Tx) error {
	var v int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	// PRAGMA не принимает параметры.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

func loadMigrationsFromFS(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	byVersion := make(map[int64]*migration)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, name, up, err := parseMigrationFileName(entry.Name())
		if err != nil {
			return nil, err
		}

		body, err := fs.ReadFile(fsys, path.Join(migrationsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration file %s: %w", entry.Name(), err)
		}
		script := strings.TrimSpace(string(body))
		if script == "" {
			return nil, fmt.Errorf("migration file is empty: %s", entry.Name())
		}

		m, ok := byVersion[version]
		if !ok {
			m = &migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if m.Name != name {
			return nil, fmt.Errorf("migration name mismatch for version %d: %s vs %s", version, m.Name, name)
		}

		target := &m.DownSQL
		if up {
			target = &m.UpSQL
		}
		if *target != "" {
			return nil, fmt.Errorf("duplicate migration file %s", entry.Name())
		}
		*target = script
	}
	if len(byVersion) == 0 {
		return nil, errors.New("no migration files found")
	}

	migrations := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration %s must have both up and down files", m)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// parseMigrationFileName разбирает имя вида 0001_init.up.sql.
func parseMigrationFileName(file string) (version int64, name string, up bool, err error) {
	invalid := fmt.Errorf("invalid migration file name: %s", file)

	stem, ok := strings.CutSuffix(file, ".sql")
	if !ok {
		return 0, "", false, invalid
	}
	switch {
	case strings.HasSuffix(stem, ".up"):
		stem, up = strings.TrimSuffix(stem, ".up"), true
	case strings.HasSuffix(stem, ".down"):
		stem = strings.TrimSuffix(stem, ".down")
	default:
		return 0, "", false, invalid
	}

	digits, name, ok := strings.Cut(stem, "_")
	if !ok || name == "" || strings.ContainsAny(name, ". ") {
		return 0, "", false, invalid
	}
	version, err = strconv.ParseInt(digits, 10, 64)
	if err != nil || version <= 0 {
		return 0, "", false, invalid
	}
	return version, name, up, nil
}
