package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DisplayDateLayout задаёт формат дат на границе с пользователем (dd/mm/yyyy).
	DisplayDateLayout = "02/01/2006"
	// displayParseLayout принимает день и месяц из одной или двух цифр.
	displayParseLayout = "2/1/2006"
	// StorageDateLayout задаёт ISO-формат дат в хранилище (yyyy-mm-dd).
	StorageDateLayout = "2006-01-02"
)

// ParseDisplayDate разбирает дату dd/mm/yyyy в локальной зоне.
// Ведущие нули у дня и месяца необязательны: "1/1/2031" равно "01/01/2031".
func ParseDisplayDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(displayParseLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateInvalid, raw)
	}
	return t, nil
}

// FormatDisplayDate печатает дату как dd/mm/yyyy.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatStorageDate печатает дату как yyyy-mm-dd.
func FormatStorageDate(t time.Time) string {
	return t.Format(StorageDateLayout)
}

// ParseStorageDate разбирает ISO-дату из хранилища.
func ParseStorageDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(StorageDateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored date %q: %w", raw, err)
	}
	return t, nil
}

// CalendarDate отбрасывает время суток, оставляя локальную календарную дату.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
