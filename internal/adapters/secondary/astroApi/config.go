package astroApi

import (
	"fmt"
	"time"
)

const (
	AuthModeAPIKey = "api_key"
	AuthModeBearer = "bearer"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL"`
	PlanetsPath string        `envconfig:"PLANETS_PATH" default:"planets"`
	ApiKey      string        `envconfig:"API_KEY"`
	AuthMode    string        `envconfig:"AUTH_MODE" default:"api_key"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"15s"`
	SkipSSL     string        `envconfig:"SKIP_SSL"` // Railway требует строки вместо bool

	ObservationPoint string `envconfig:"OBSERVATION_POINT" default:"topocentric"`
	Ayanamsha        string `envconfig:"AYANAMSHA" default:"sayana"`
}

// Validate вызывается на старте: без ключа и адреса провайдера сервис не поднимается
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("astro API base url is required")
	}
	if c.ApiKey == "" {
		return fmt.Errorf("astro API key is required")
	}
	switch c.AuthMode {
	case "", AuthModeAPIKey, AuthModeBearer:
	default:
		return fmt.Errorf("invalid astro API auth mode: %s", c.AuthMode)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("astro API timeout must not be negative")
	}
	return nil
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}

// RequiresSession в bearer-режиме провайдеру уходит токен пользователя
func (c *Config) RequiresSession() bool {
	return c.AuthMode == AuthModeBearer
}
