// Package dates содержит вспомогательные функции календарной арифметики:
// парсинг дат без времени, длина месяца и построение последовательности дней.
package dates

import (
	"fmt"
	"time"
)

// Layout — единый формат календарной даты во всём приложении.
const Layout = "2006-01-02"

// Parse разбирает строку вида "2006-01-02" в дату с нулевым временем в UTC.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// DaysInMonth возвращает количество дней в месяце с учётом високосных лет.
// Нулевой день следующего месяца нормализуется в последний день текущего,
// поэтому декабрь корректно переходит в январь следующего года.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstOfMonth возвращает первый день месяца.
func FirstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// LastOfMonth возвращает последний день месяца.
func LastOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// Each возвращает все календарные дни от start до end включительно.
// Для перевёрнутого диапазона (start после end) возвращается пустой срез.
func Each(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
