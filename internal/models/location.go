package models

// Location — координаты и описание местоположения пользователя,
// полученные по IP или взятые из конфигурации.
type Location struct {
	IP        string  `json:"ip,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}
