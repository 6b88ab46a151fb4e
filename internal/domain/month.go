package domain

import (
	"fmt"
	"time"
)

// ParseDate парсит дату формата YYYY-MM-DD
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// ParseMonth парсит месяц формата YYYY-MM
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthFormat, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// MonthOf возвращает месяц даты
func MonthOf(t time.Time) string {
	return t.Format(MonthFormat)
}

// MonthWindow возвращает count месяцев, начиная с месяца from
func MonthWindow(from time.Time, count int) []string {
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	months := make([]string, 0, count)
	for i := 0; i < count; i++ {
		months = append(months, first.AddDate(0, i, 0).Format(MonthFormat))
	}
	return months
}
