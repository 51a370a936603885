package models

// HijriDay — один день календаря хиджры с праздниками, если они есть.
// GregorianDate заполняется при обратной конвертации даты.
type HijriDay struct {
	Day           string   `json:"day"`
	Month         string   `json:"month"` // Название месяца хиджры на английском
	Year          string   `json:"year"`
	Date          string   `json:"date,omitempty"` // Дата хиджры вида DD-MM-YYYY
	GregorianDate string   `json:"gregorian_date,omitempty"`
	Holidays      []string `json:"holidays,omitempty"`
}
