//go:build sqlite_cgo

package sqlite

// Сборка с CGO-драйвером mattn/go-sqlite3:
//
//   CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const (
	// DriverName — имя драйвера database/sql.
	DriverName = "sqlite3"
	// BuildMode описывает текущую конфигурацию сборки.
	BuildMode = "cgo"
)

func buildDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
