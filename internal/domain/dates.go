package domain

import (
	"fmt"
	"time"
)

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today текущая дата в UTC
func Today(now time.Time) time.Time {
	return DateOnly(now.UTC())
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, Reject(ErrInvalidDate, fmt.Sprintf("date %q must be in YYYY-MM-DD format", s))
	}
	return t, nil
}

// DateKey ключ даты для календаря
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// AddDays сдвигает дату на n дней
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DaysInclusive количество дат в диапазоне [start, end]
func DaysInclusive(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
