package scheduleprovider

// Структуры ответов Aladhan API. Описаны только используемые поля.

type timingsResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

type calendarResponse struct {
	Code int `json:"code"`
	Data []struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Gregorian struct {
				Date string `json:"date"` // DD-MM-YYYY
			} `json:"gregorian"`
		} `json:"date"`
	} `json:"data"`
}

type hijriInfo struct {
	Day  string `json:"day"`
	Date string `json:"date"` // DD-MM-YYYY по хиджре
	Year string `json:"year"`
	Month struct {
		En string `json:"en"`
	} `json:"month"`
	Holidays []string `json:"holidays"`
}

type hijriCalendarResponse struct {
	Code int `json:"code"`
	Data []struct {
		Hijri     hijriInfo `json:"hijri"`
		Gregorian struct {
			Date string `json:"date"` // DD-MM-YYYY
		} `json:"gregorian"`
	} `json:"data"`
}

type hijriDateResponse struct {
	Code int `json:"code"`
	Data struct {
		Hijri     hijriInfo `json:"hijri"`
		Gregorian struct {
			Date string `json:"date"`
		} `json:"gregorian"`
	} `json:"data"`
}
