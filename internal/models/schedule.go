package models

// DailySchedule — расписание намазов на один день, полученное от внешнего
// провайдера. Timings содержит время вида "05:12" по каноническим названиям;
// отсутствующий или некорректный у провайдера намаз в карту не попадает.
type DailySchedule struct {
	Date    string            `json:"date"` // Дата в формате 2006-01-02
	Timings map[string]string `json:"timings"`
}

// ReminderInfo — сообщение о приближающемся намазе, публикуемое в очередь
// напоминаний и потребляемое сервисом отправки.
type ReminderInfo struct {
	EventID string `json:"event_id"` // Уникальный идентификатор события
	UserID  int64  `json:"user_id"`
	Prayer  string `json:"prayer"` // Название намаза
	Time    string `json:"time"`   // Время намаза вида "05:12"
	Date    string `json:"date"`   // Дата в формате 2006-01-02
}
