package middlewares

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/httperr"
	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

const sessionKey = "session"

// Auth без заголовка Authorization запрос остаётся анонимным,
// нужна ли сессия решает usecase. Присланный, но невалидный токен - 401.
func Auth(verifier service.ISessionVerifier, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		reqLog := logger.FromContext(c.Request.Context(), log)

		token, ok := bearerToken(header)
		if !ok {
			reqLog.Warn("malformed authorization header")
			httperr.Abort(c, domain.ErrUnauthenticated)
			return
		}

		if verifier == nil {
			reqLog.Debug("session verifier not configured, request stays anonymous")
			c.Next()
			return
		}

		session, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			reqLog.Warn("session rejected", "error", err)
			httperr.Abort(c, domain.ErrUnauthenticated)
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFrom nil для анонимного запроса
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
