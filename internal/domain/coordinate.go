package domain

// FallbackZoneName зона, которую отдаёт резолвер, если координаты не попали ни в одну зону
const FallbackZoneName = "Etc/GMT"

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TimezoneResolution результат резолва таймзоны. Неизменяем после создания.
type TimezoneResolution struct {
	OffsetHours float64 `json:"timezone"`
	ZoneName    string  `json:"name"`
}

// FallbackResolution деградированный, но успешный результат резолва
func FallbackResolution() TimezoneResolution {
	return TimezoneResolution{OffsetHours: 0, ZoneName: FallbackZoneName}
}

func (r TimezoneResolution) IsFallback() bool {
	return r.ZoneName == FallbackZoneName && r.OffsetHours == 0
}
