package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing coordinate", domain.ErrMissingCoordinate, http.StatusBadRequest, "Missing lat/lon"},
		{"invalid coordinate wrapped", fmt.Errorf("%w: lat", domain.ErrInvalidCoordinate), http.StatusBadRequest, "Invalid lat/lon"},
		{"incomplete profile in business error", domain.WrapBusinessError(fmt.Errorf("%w: missing timeOfBirth", domain.ErrIncompleteProfile)), http.StatusBadRequest, "Incomplete birth profile"},
		{"invalid profile", domain.ErrInvalidProfile, http.StatusBadRequest, "Invalid birth date or time"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{"not found", fmt.Errorf("load: %w", domain.ErrProfileNotFound), http.StatusNotFound, "Profile not found"},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{"downstream with message", domain.NewDownstreamError(502, "quota exceeded", nil), http.StatusInternalServerError, "quota exceeded"},
		{"downstream generic", fmt.Errorf("fetch: %w", domain.NewDownstreamError(0, "", nil)), http.StatusInternalServerError, domain.GenericChartFailureMessage},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}
