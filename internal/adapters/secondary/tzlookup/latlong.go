package tzlookup

import (
	"github.com/bradfitz/latlong"

	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

// tablesNotGenerated заглушка, которую latlong возвращает без сгенерированных таблиц
const tablesNotGenerated = "tables not generated yet"

// LatLong офлайн-поиск IANA зоны по встроенному датасету границ часовых поясов
type LatLong struct{}

func New() service.IZoneLookup {
	return LatLong{}
}

// LookupZoneName возвращает "" для точек вне границ (океан, пробелы в датасете)
func (LatLong) LookupZoneName(lat, lon float64) string {
	zone := latlong.LookupZoneName(lat, lon)
	if zone == tablesNotGenerated {
		return ""
	}
	return zone
}
