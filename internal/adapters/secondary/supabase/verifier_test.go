package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, key string, subject string, expiresIn time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: "user@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestVerify_LocalJWT(t *testing.T) {
	v := NewVerifier(&Config{JWTSecret: secret}, logger.Discard())
	token := signToken(t, secret, "3f1c-user", time.Hour)

	session, err := v.Verify(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "3f1c-user", session.UserID)
	assert.Equal(t, "user@example.com", session.Email)
	assert.Equal(t, token, session.Token)
}

func TestVerify_LocalJWTRejected(t *testing.T) {
	v := NewVerifier(&Config{JWTSecret: secret}, logger.Discard())

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"expired":      signToken(t, secret, "u1", -time.Minute),
		"wrong secret": signToken(t, "another-secret-another-secret-123", "u1", time.Hour),
		"no subject":   signToken(t, secret, "", time.Hour),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestVerify_RemoteFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		if r.Header.Get("Authorization") != "Bearer opaque-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"remote-user","email":"r@example.com","role":"authenticated"}`))
	}))
	defer srv.Close()

	v := NewVerifier(&Config{URL: srv.URL, AnonKey: "anon", JWTSecret: secret}, logger.Discard())

	session, err := v.Verify(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "remote-user", session.UserID)

	_, err = v.Verify(context.Background(), "other-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestConfigCanVerify(t *testing.T) {
	assert.False(t, (&Config{}).CanVerify())
	assert.False(t, (&Config{URL: "https://x.supabase.co"}).CanVerify())
	assert.True(t, (&Config{URL: "https://x.supabase.co", AnonKey: "anon"}).CanVerify())
	assert.True(t, (&Config{JWTSecret: secret}).CanVerify())
}
