package service

import (
	"context"
	"encoding/json"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

// IPlanetsProvider внешний сервис расчёта позиций планет (чёрный ящик по HTTP)
type IPlanetsProvider interface {
	// FetchPlanetPositions делает ровно один исходящий запрос.
	// sessionToken нужен только в bearer-режиме, в режиме api_key игнорируется.
	FetchPlanetPositions(ctx context.Context, payload json.RawMessage, sessionToken string) (*domain.ChartResult, error)
}

// IAstroAPIService сборка запроса из профиля и отправка провайдеру
type IAstroAPIService interface {
	AssembleRequest(profile domain.BirthProfile) (domain.ChartRequest, error)
	FetchChart(ctx context.Context, req domain.ChartRequest, sessionToken string) (*domain.ChartResult, error)
	FetchPlanetPositions(ctx context.Context, payload json.RawMessage, sessionToken string) (*domain.ChartResult, error)
}
