package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/validator"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/repository"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

type Service struct {
	Repo     repository.IProfileRepo
	Resolver service.ITimezoneResolver
	Log      *slog.Logger
}

func New(repo repository.IProfileRepo, resolver service.ITimezoneResolver, log *slog.Logger) *Service {
	return &Service{
		Repo:     repo,
		Resolver: resolver,
		Log:      log,
	}
}

var _ service.IProfileService = (*Service)(nil)

func (s *Service) Get(ctx context.Context, session *domain.Session) (*domain.StoredProfile, error) {
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.Repo.GetByUserID(ctx, session.UserID)
}

// Save сохраняет профиль пользователя сессии.
// Если клиент не прислал смещение, оно берётся из резолвера таймзон.
func (s *Service) Save(ctx context.Context, session *domain.Session, in domain.BirthProfile) (*domain.StoredProfile, error) {
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}

	if in.Latitude == nil || in.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", domain.ErrIncompleteProfile)
	}

	coord := domain.Coordinate{Latitude: *in.Latitude, Longitude: *in.Longitude}
	if err := validator.CheckCoordinate(coord); err != nil {
		return nil, err
	}

	resolution := s.Resolver.Resolve(coord)
	if in.TimezoneOffsetHours == nil {
		offset := resolution.OffsetHours
		in.TimezoneOffsetHours = &offset
	}

	profile, err := validator.ValidateBirthProfile(in)
	if err != nil {
		return nil, err
	}

	if _, _, err := validator.ParseBirthMoment(profile); err != nil {
		return nil, err
	}

	stored := &domain.StoredProfile{
		UserID:              session.UserID,
		DateOfBirth:         strings.TrimSpace(profile.DateOfBirth),
		TimeOfBirth:         strings.TrimSpace(profile.TimeOfBirth),
		Latitude:            coord.Latitude,
		Longitude:           coord.Longitude,
		TimezoneOffsetHours: *profile.TimezoneOffsetHours,
		ZoneName:            resolution.ZoneName,
	}

	if err := s.Repo.Upsert(ctx, stored); err != nil {
		s.Log.Error("failed to save profile", "error", err, "user_id", session.UserID)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.Log.Info("profile saved",
		"user_id", session.UserID,
		"zone", stored.ZoneName,
		"offset_hours", stored.TimezoneOffsetHours,
	)

	return stored, nil
}

// Delete удаляет сохранённый профиль пользователя сессии
func (s *Service) Delete(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthenticated
	}

	if err := s.Repo.DeleteByUserID(ctx, session.UserID); err != nil {
		return err
	}

	s.Log.Info("profile deleted", "user_id", session.UserID)
	return nil
}
