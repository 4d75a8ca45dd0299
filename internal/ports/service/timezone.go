package service

import "github.com/sitandoucara/astro-app-sub001/internal/domain"

// IZoneLookup геопоиск IANA зоны по координатам. Пустая строка - промах.
type IZoneLookup interface {
	LookupZoneName(lat, lon float64) string
}

// ITimezoneResolver никогда не возвращает ошибку: промах превращается в Etc/GMT
type ITimezoneResolver interface {
	Resolve(coord domain.Coordinate) domain.TimezoneResolution
}
