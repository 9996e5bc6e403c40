//go:build !sqlite_cgo

package sqlite

// Сборка по умолчанию: чистый Go-драйвер без CGO.
//
//   CGO_ENABLED=0 go build ./...

import (
	"errors"
	"net/url"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	// DriverName — имя драйвера database/sql.
	DriverName = "sqlite"
	// BuildMode описывает текущую конфигурацию сборки.
	BuildMode = "purego"
)

func buildDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	return path + "?" + params.Encode()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
			strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
