package repository

import (
	"context"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

// IProfileRepo интерфейс для работы с профилями рождения
type IProfileRepo interface {
	GetByUserID(ctx context.Context, userID string) (*domain.StoredProfile, error)
	Upsert(ctx context.Context, profile *domain.StoredProfile) error
	DeleteByUserID(ctx context.Context, userID string) error
}
