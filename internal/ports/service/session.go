package service

import (
	"context"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

// ISessionVerifier проверка токена сессии managed auth провайдера
type ISessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Session, error)
}
