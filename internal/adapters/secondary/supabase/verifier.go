package supabase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type user struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verifier проверяет access token Supabase.
// Сначала локально по JWT секрету, при неудаче - через /auth/v1/user.
type Verifier struct {
	cfg  *Config
	http *resty.Client
	Log  *slog.Logger
}

func NewVerifier(cfg *Config, log *slog.Logger) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Verifier{
		cfg: cfg,
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(cfg.URL, "/")).
			SetTimeout(timeout),
		Log: log,
	}
}

var _ service.ISessionVerifier = (*Verifier)(nil)

func (v *Verifier) Verify(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	if v.cfg.JWTSecret != "" {
		session, err := v.verifyLocal(token)
		if err == nil {
			return session, nil
		}
		v.Log.Debug("local jwt verification failed", "error", err)
	}

	if v.cfg.URL != "" && v.cfg.AnonKey != "" {
		return v.verifyRemote(ctx, token)
	}

	return nil, domain.ErrUnauthenticated
}

func (v *Verifier) verifyLocal(token string) (*domain.Session, error) {
	var c claims

	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.cfg.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("jwt invalid")
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("jwt has no subject")
	}

	return &domain.Session{
		UserID: c.Subject,
		Email:  c.Email,
		Role:   c.Role,
		Token:  token,
	}, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (*domain.Session, error) {
	var u user

	resp, err := v.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("apikey", v.cfg.AnonKey).
		SetResult(&u).
		Get("/auth/v1/user")
	if err != nil {
		v.Log.Warn("supabase auth request failed", "error", err)
		return nil, fmt.Errorf("%w: auth provider unavailable", domain.ErrUnauthenticated)
	}

	if !resp.IsSuccess() || u.ID == "" {
		return nil, fmt.Errorf("%w: session rejected [status=%d]", domain.ErrUnauthenticated, resp.StatusCode())
	}

	return &domain.Session{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Token:  token,
	}, nil
}
