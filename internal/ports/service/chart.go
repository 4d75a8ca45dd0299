package service

import (
	"context"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

// IChartService пайплайн генерации натальной карты
type IChartService interface {
	GenerateChart(ctx context.Context, profile domain.BirthProfile, session *domain.Session) (*domain.ChartResult, error)
	GenerateForUser(ctx context.Context, session *domain.Session) (*domain.ChartResult, error)
}

// IProfileService хранение профиля рождения пользователя
type IProfileService interface {
	Get(ctx context.Context, session *domain.Session) (*domain.StoredProfile, error)
	Save(ctx context.Context, session *domain.Session, profile domain.BirthProfile) (*domain.StoredProfile, error)
	Delete(ctx context.Context, session *domain.Session) error
}
