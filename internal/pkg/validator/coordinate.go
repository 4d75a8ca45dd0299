package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

// ValidateCoordinate проверяет lat/lon из query-параметров.
// Пустая строка считается отсутствующим значением; частичный ввод не дополняется дефолтом.
func ValidateCoordinate(lat, lon string) (domain.Coordinate, error) {
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return domain.Coordinate{}, domain.ErrMissingCoordinate
	}

	latitude, err := parseDegrees(lat, 90)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: lat: %v", domain.ErrInvalidCoordinate, err)
	}

	longitude, err := parseDegrees(lon, 180)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: lon: %v", domain.ErrInvalidCoordinate, err)
	}

	return domain.Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

// CheckCoordinate диапазоны для уже числовых координат (тело запроса)
func CheckCoordinate(c domain.Coordinate) error {
	if !inRange(c.Latitude, 90) || !inRange(c.Longitude, 180) {
		return domain.ErrInvalidCoordinate
	}
	return nil
}

func parseDegrees(raw string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if !inRange(v, limit) {
		return 0, fmt.Errorf("%v is out of range [-%v, %v]", v, limit, limit)
	}
	return v, nil
}

func inRange(v, limit float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= -limit && v <= limit
}
