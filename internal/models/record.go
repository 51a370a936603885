// Package models содержит доменные структуры трекера намазов,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// PrayerNames — пять канонических названий намазов в фиксированном порядке.
// Порядок важен: он используется при ранжировании в расписании и при отрисовке.
var PrayerNames = [5]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// PrayerRecord представляет собой основную модель записи о совершённых намазах,
// используемую в бизнес-логике и хранилище. На пару (UserID, Date)
// существует не более одной записи.
type PrayerRecord struct {
	UserID  int64     `json:"user_id"` // Идентификатор пользователя
	Date    time.Time `json:"-"`       // Календарная дата записи (без времени)
	Fajr    bool      `json:"fajr"`
	Dhuhr   bool      `json:"dhuhr"`
	Asr     bool      `json:"asr"`
	Maghrib bool      `json:"maghrib"`
	Isha    bool      `json:"isha"`
}

// DummyRecord используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в PrayerRecord.
// Дата приходит в виде строки: её формат проверяет бизнес-логика при парсинге.
type DummyRecord struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"` // Идентификатор пользователя (>0)
	Date    string `json:"date" validate:"required"`         // Дата в формате 2006-01-02
	Fajr    bool   `json:"fajr"`
	Dhuhr   bool   `json:"dhuhr"`
	Asr     bool   `json:"asr"`
	Maghrib bool   `json:"maghrib"`
	Isha    bool   `json:"isha"`
}

// DayEntry — один день календарного представления: дата и пять флагов.
// Для дней без записи в хранилище все флаги остаются false.
type DayEntry struct {
	Date    string `json:"date"` // Дата в формате 2006-01-02
	Fajr    bool   `json:"fajr"`
	Dhuhr   bool   `json:"dhuhr"`
	Asr     bool   `json:"asr"`
	Maghrib bool   `json:"maghrib"`
	Isha    bool   `json:"isha"`
}

// Flags возвращает пять флагов дня в каноническом порядке намазов.
func (d DayEntry) Flags() [5]bool {
	return [5]bool{d.Fajr, d.Dhuhr, d.Asr, d.Maghrib, d.Isha}
}

// UserDayEntry — запись одного пользователя за один день в форме ответа API.
type UserDayEntry struct {
	UserID int64 `json:"user_id"`
	DayEntry
}

// MonthView — календарное представление за месяц: каждый день месяца
// присутствует ровно один раз, по возрастанию даты, без пропусков.
type MonthView struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []DayEntry `json:"data"`
}

// RangeView — календарное представление за произвольный диапазон дат,
// включая обе границы. Для перевёрнутого диапазона Days пуст.
type RangeView struct {
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Days      []DayEntry `json:"data"`
}
