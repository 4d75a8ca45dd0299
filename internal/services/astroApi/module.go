package astroApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/validator"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

// Service собирает запрос к провайдеру из профиля и отправляет его
type Service struct {
	client   service.IPlanetsProvider
	settings domain.ChartSettings
	Log      *slog.Logger
}

// New создаёт новый сервис для работы с провайдером позиций планет
func New(client service.IPlanetsProvider, settings domain.ChartSettings, log *slog.Logger) service.IAstroAPIService {
	return &Service{
		client:   client,
		settings: settings,
		Log:      log,
	}
}

// AssembleRequest 1:1 переносит провалидированный профиль в формат провайдера.
// Смещение таймзоны берётся из профиля и здесь не пересчитывается.
func (s *Service) AssembleRequest(profile domain.BirthProfile) (domain.ChartRequest, error) {
	if profile.Latitude == nil || profile.Longitude == nil || profile.TimezoneOffsetHours == nil {
		return domain.ChartRequest{}, domain.ErrIncompleteProfile
	}

	date, clock, err := validator.ParseBirthMoment(profile)
	if err != nil {
		return domain.ChartRequest{}, err
	}

	return domain.ChartRequest{
		Year:      date.Year(),
		Month:     int(date.Month()),
		Date:      date.Day(),
		Hours:     clock.Hour(),
		Minutes:   clock.Minute(),
		Seconds:   clock.Second(),
		Latitude:  *profile.Latitude,
		Longitude: *profile.Longitude,
		Timezone:  *profile.TimezoneOffsetHours,
		Settings:  s.settings,
	}, nil
}

// FetchChart сериализует запрос и делает ровно один вызов провайдера
func (s *Service) FetchChart(ctx context.Context, req domain.ChartRequest, sessionToken string) (*domain.ChartResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart request: %w", err)
	}

	return s.FetchPlanetPositions(ctx, payload, sessionToken)
}

// FetchPlanetPositions низкоуровневый проброс payload'а провайдеру
func (s *Service) FetchPlanetPositions(ctx context.Context, payload json.RawMessage, sessionToken string) (*domain.ChartResult, error) {
	result, err := s.client.FetchPlanetPositions(ctx, payload, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch planet positions: %w", err)
	}

	if len(result.Raw) == 0 {
		return nil, domain.NewDownstreamError(0, "", fmt.Errorf("planets provider returned empty response"))
	}

	return result, nil
}
