package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

// Response тело любой ошибки API
type Response struct {
	Error string `json:"error"`
}

// Status единственное место, где доменные ошибки превращаются в HTTP-коды
func Status(err error) (int, string) {
	if de, ok := domain.AsDownstreamError(err); ok {
		return http.StatusInternalServerError, de.Message
	}

	switch {
	case errors.Is(err, domain.ErrMissingCoordinate):
		return http.StatusBadRequest, "Missing lat/lon"
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return http.StatusBadRequest, "Invalid lat/lon"
	case errors.Is(err, domain.ErrIncompleteProfile):
		return http.StatusBadRequest, "Incomplete birth profile"
	case errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest, "Invalid birth date or time"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "Profile not found"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func Abort(ctx *gin.Context, err error) {
	status, message := Status(err)
	ctx.AbortWithStatusJSON(status, Response{Error: message})
}

// AbortWith ответ с фиксированным сообщением, когда маппинг по ошибке не нужен
func AbortWith(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, Response{Error: message})
}
