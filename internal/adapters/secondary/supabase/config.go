package supabase

import "time"

type Config struct {
	URL       string        `envconfig:"URL"`
	AnonKey   string        `envconfig:"ANON_KEY"`
	JWTSecret string        `envconfig:"JWT_SECRET"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// CanVerify есть ли чем проверять токены: секрет для локальной проверки или REST API
func (c *Config) CanVerify() bool {
	return c.JWTSecret != "" || (c.URL != "" && c.AnonKey != "")
}
