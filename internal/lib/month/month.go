// Package month реализует календарную арифметику для сроков подписок.
package month

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrBadPeriod возвращается, когда строка периода не содержит числа месяцев.
var ErrBadPeriod = errors.New("bad subscription period")

var periodRe = regexp.MustCompile(`^\s*(\d+)\s*month`)

// ParsePeriod извлекает целое число месяцев из строки вида "3 month".
func ParsePeriod(s string) (int, error) {
	const op = "month.ParsePeriod"
	match := periodRe.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%s: %q: %w", op, s, ErrBadPeriod)
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// AddMonths прибавляет к дате заданное число календарных месяцев.
// Если в целевом месяце нет такого дня, дата прижимается к последнему дню
// месяца: 2024-01-31 + 1 месяц = 2024-02-29. time.AddDate здесь не подходит,
// он переносит переполнение на следующий месяц.
func AddMonths(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).
		AddDate(0, months, 0)

	day := t.Day()
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
