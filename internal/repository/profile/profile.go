package profileRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/persistence"
	ports "github.com/sitandoucara/astro-app-sub001/internal/ports/repository"
)

type profileColumns struct {
	TableName           string
	UserID              string
	DateOfBirth         string
	TimeOfBirth         string
	Latitude            string
	Longitude           string
	TimezoneOffsetHours string
	ZoneName            string
	CreatedAt           string
	UpdatedAt           string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns profileColumns
	now     func() time.Time
}

// New создаёт репозиторий профилей рождения
func New(db persistence.Persistence, log *slog.Logger) ports.IProfileRepo {
	cols := profileColumns{
		TableName:           "birth_profiles",
		UserID:              "user_id",
		DateOfBirth:         "date_of_birth",
		TimeOfBirth:         "time_of_birth",
		Latitude:            "latitude",
		Longitude:           "longitude",
		TimezoneOffsetHours: "timezone_offset_hours",
		ZoneName:            "zone_name",
		CreatedAt:           "created_at",
		UpdatedAt:           "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
		now:     time.Now,
	}
}

func (r *Repository) allColumns() string {
	return strings.Join([]string{
		r.columns.UserID,
		r.columns.DateOfBirth,
		r.columns.TimeOfBirth,
		r.columns.Latitude,
		r.columns.Longitude,
		r.columns.TimezoneOffsetHours,
		r.columns.ZoneName,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
	}, ", ")
}

// GetByUserID получает профиль пользователя Supabase
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*domain.StoredProfile, error) {
	var profile domain.StoredProfile
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID)

	err := r.db.Get(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("profile not found", "user_id", userID)
			return nil, domain.ErrProfileNotFound
		}
		r.Log.Error("failed to get profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Upsert создаёт или перезаписывает профиль; created_at при обновлении не меняется
func (r *Repository) Upsert(ctx context.Context, profile *domain.StoredProfile) error {
	now := r.now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (%s) DO UPDATE SET
		%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.UserID,
		r.columns.DateOfBirth, r.columns.DateOfBirth,
		r.columns.TimeOfBirth, r.columns.TimeOfBirth,
		r.columns.Latitude, r.columns.Latitude,
		r.columns.Longitude, r.columns.Longitude,
		r.columns.TimezoneOffsetHours, r.columns.TimezoneOffsetHours,
		r.columns.ZoneName, r.columns.ZoneName,
		r.columns.UpdatedAt, r.columns.UpdatedAt)

	err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.DateOfBirth,
		profile.TimeOfBirth,
		profile.Latitude,
		profile.Longitude,
		profile.TimezoneOffsetHours,
		profile.ZoneName,
		profile.CreatedAt,
		profile.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to upsert profile",
			"error", err,
			"user_id", profile.UserID)
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.Log.Debug("profile saved", "user_id", profile.UserID, "zone", profile.ZoneName)
	return nil
}

// DeleteByUserID удаляет профиль
func (r *Repository) DeleteByUserID(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.UserID)

	rowsAffected, err := r.db.ExecWithResult(ctx, query, userID)
	if err != nil {
		r.Log.Error("failed to delete profile",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
