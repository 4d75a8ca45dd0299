package chart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/validator"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/repository"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

// Service пайплайн генерации карты: валидация -> сессия -> сборка запроса -> один вызов провайдера.
// Всё, что может упасть на входных данных, падает до сетевого вызова.
type Service struct {
	AstroAPI    service.IAstroAPIService
	Profiles    repository.IProfileRepo
	RequireAuth bool
	metrics     *metrics.Collector
	Log         *slog.Logger
}

// New profiles может быть nil, если хранилище профилей отключено
func New(
	astroAPI service.IAstroAPIService,
	profiles repository.IProfileRepo,
	requireAuth bool,
	collector *metrics.Collector,
	log *slog.Logger,
) *Service {
	return &Service{
		AstroAPI:    astroAPI,
		Profiles:    profiles,
		RequireAuth: requireAuth,
		metrics:     collector,
		Log:         log,
	}
}

var _ service.IChartService = (*Service)(nil)

func (s *Service) GenerateChart(ctx context.Context, profile domain.BirthProfile, session *domain.Session) (*domain.ChartResult, error) {
	log := logger.FromContext(ctx, s.Log)

	validated, err := validator.ValidateBirthProfile(profile)
	if err != nil {
		log.Warn("birth profile rejected", "profile_id", profile.ID, "error", err)
		s.metrics.ChartOutcome(metrics.OutcomeIncomplete)
		return nil, domain.WrapBusinessError(err)
	}

	if s.RequireAuth && session == nil {
		s.metrics.ChartOutcome(metrics.OutcomeUnauthenticated)
		return nil, domain.ErrUnauthenticated
	}

	req, err := s.AstroAPI.AssembleRequest(validated)
	if err != nil {
		log.Warn("failed to assemble chart request", "profile_id", profile.ID, "error", err)
		s.metrics.ChartOutcome(metrics.OutcomeInvalid)
		return nil, domain.WrapBusinessError(err)
	}

	var token string
	if session != nil {
		token = session.Token
	}

	result, err := s.AstroAPI.FetchChart(ctx, req, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.metrics.ChartOutcome(metrics.OutcomeUnauthenticated)
			return nil, err
		}
		log.Warn("chart generation failed", "profile_id", profile.ID, "error", err)
		s.metrics.ChartOutcome(metrics.OutcomeDownstream)
		if _, ok := domain.AsDownstreamError(err); ok {
			return nil, err
		}
		return nil, domain.NewDownstreamError(0, "", err)
	}

	log.Debug("chart generated", "profile_id", profile.ID, "planets", len(result.Planets))
	s.metrics.ChartOutcome(metrics.OutcomeSuccess)

	return result, nil
}

// GenerateForUser генерирует карту по сохранённому профилю пользователя сессии
func (s *Service) GenerateForUser(ctx context.Context, session *domain.Session) (*domain.ChartResult, error) {
	if session == nil {
		s.metrics.ChartOutcome(metrics.OutcomeUnauthenticated)
		return nil, domain.ErrUnauthenticated
	}
	if s.Profiles == nil {
		return nil, fmt.Errorf("profile storage is not configured")
	}

	stored, err := s.Profiles.GetByUserID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return s.GenerateChart(ctx, stored.ToBirthProfile(), session)
}
