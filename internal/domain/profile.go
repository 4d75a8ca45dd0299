package domain

import "time"

// BirthProfile данные рождения, которые присылает клиент.
// Числовые поля - указатели: nil значит "не передано", 0 - валидное значение (экватор, Гринвич, UTC).
type BirthProfile struct {
	ID                  string   `json:"id"`
	DateOfBirth         string   `json:"dateOfBirth"`
	TimeOfBirth         string   `json:"timeOfBirth"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	TimezoneOffsetHours *float64 `json:"timezoneOffsetHours"`
}

// StoredProfile профиль пользователя в хранилище
type StoredProfile struct {
	UserID              string    `json:"id" db:"user_id"`
	DateOfBirth         string    `json:"dateOfBirth" db:"date_of_birth"`
	TimeOfBirth         string    `json:"timeOfBirth" db:"time_of_birth"`
	Latitude            float64   `json:"latitude" db:"latitude"`
	Longitude           float64   `json:"longitude" db:"longitude"`
	TimezoneOffsetHours float64   `json:"timezoneOffsetHours" db:"timezone_offset_hours"`
	ZoneName            string    `json:"zoneName" db:"zone_name"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

// ToBirthProfile собирает BirthProfile для пайплайна генерации карты
func (p *StoredProfile) ToBirthProfile() BirthProfile {
	lat, lon, offset := p.Latitude, p.Longitude, p.TimezoneOffsetHours
	return BirthProfile{
		ID:                  p.UserID,
		DateOfBirth:         p.DateOfBirth,
		TimeOfBirth:         p.TimeOfBirth,
		Latitude:            &lat,
		Longitude:           &lon,
		TimezoneOffsetHours: &offset,
	}
}
