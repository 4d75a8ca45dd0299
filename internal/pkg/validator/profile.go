package validator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Oudwins/zog"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

var (
	dateLayouts = []string{"2006-01-02", time.RFC3339}
	timeLayouts = []string{"15:04", "15:04:05", time.RFC3339}
)

// все пять полей данных обязательны.
// Числа проверяются на nil, а не на "ложность": 0 - валидная широта/долгота/смещение.
var birthProfileShape = zog.Shape{
	"dateOfBirth":         zog.String().Required(),
	"timeOfBirth":         zog.String().Required(),
	"latitude":            zog.Ptr(zog.Float64()).NotNil(),
	"longitude":           zog.Ptr(zog.Float64()).NotNil(),
	"timezoneOffsetHours": zog.Ptr(zog.Float64()).NotNil(),
}

var birthProfileSchema = zog.Struct(birthProfileShape)

// ValidateBirthProfile pass-through проверка полноты профиля, профиль не мутируется
func ValidateBirthProfile(profile domain.BirthProfile) (domain.BirthProfile, error) {
	// строка из одних пробелов считается пустой; проверяем обрезанную копию
	probe := profile
	probe.DateOfBirth = strings.TrimSpace(probe.DateOfBirth)
	probe.TimeOfBirth = strings.TrimSpace(probe.TimeOfBirth)

	issues := birthProfileSchema.Validate(&probe)
	if len(issues) == 0 {
		return profile, nil
	}

	fields := make([]string, 0, len(issues))
	for field := range issues {
		if strings.HasPrefix(field, "$") {
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return profile, fmt.Errorf("%w: missing %s", domain.ErrIncompleteProfile, strings.Join(fields, ", "))
}

// ParseBirthMoment разбирает дату и время рождения.
// Дата: YYYY-MM-DD или RFC3339, время: HH:MM, HH:MM:SS или RFC3339.
func ParseBirthMoment(profile domain.BirthProfile) (date time.Time, clock time.Time, err error) {
	date, err = parseFirst(strings.TrimSpace(profile.DateOfBirth), dateLayouts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: dateOfBirth %q", domain.ErrInvalidProfile, profile.DateOfBirth)
	}

	clock, err = parseFirst(strings.TrimSpace(profile.TimeOfBirth), timeLayouts)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: timeOfBirth %q", domain.ErrInvalidProfile, profile.TimeOfBirth)
	}

	return date, clock, nil
}

func parseFirst(value string, layouts []string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
