package domain

import "encoding/json"

// ChartSettings настройки расчёта, передаются провайдеру как есть
type ChartSettings struct {
	ObservationPoint string `json:"observation_point"`
	Ayanamsha        string `json:"ayanamsha"`
}

// ChartRequest исходящий запрос к провайдеру позиций планет.
// Собирается заново на каждый запрос и никуда не сохраняется.
type ChartRequest struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	Date      int           `json:"date"`
	Hours     int           `json:"hours"`
	Minutes   int           `json:"minutes"`
	Seconds   int           `json:"seconds"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Timezone  float64       `json:"timezone"`
	Settings  ChartSettings `json:"settings"`
}

type PlanetData struct {
	Name       string  `json:"name"`
	FullDegree float64 `json:"full_degree"`
	NormDegree float64 `json:"norm_degree"`
	Speed      float64 `json:"speed"`
	IsRetro    bool    `json:"is_retro"`
	House      int     `json:"house"`
	Sign       string  `json:"sign"`
	SignDegree float64 `json:"sign_degree"`
	Position   string  `json:"position"`
}

type AscendantData struct {
	Degree   float64 `json:"degree"`
	Sign     string  `json:"sign"`
	Position string  `json:"position"`
}

// ChartResult нормализованный ответ провайдера.
// Raw хранит тело ответа байт-в-байт, клиенту отдаётся именно оно.
type ChartResult struct {
	Planets   []PlanetData    `json:"planets"`
	Ascendant AscendantData   `json:"ascendant"`
	Raw       json.RawMessage `json:"-"`
}
