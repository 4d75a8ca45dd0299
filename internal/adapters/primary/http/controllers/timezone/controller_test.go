package timezoneController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/tzlookup"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
	"github.com/sitandoucara/astro-app-sub001/internal/services/timezone"
)

type missLookup struct{}

func (missLookup) LookupZoneName(float64, float64) string { return "" }

func newRouter(lookup service.IZoneLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := timezone.New(lookup, nil, logger.Discard())
	return server.NewRouter(&server.Config{}, logger.Discard(), New(resolver, logger.Discard()))
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestTimezone_MissingCoordinates(t *testing.T) {
	router := newRouter(tzlookup.New())

	for _, target := range []string{
		"/api/timezone",
		"/api/timezone?lat=48.8566",
		"/api/timezone?lon=2.3522",
		"/api/timezone?lat=&lon=2.3522",
	} {
		t.Run(target, func(t *testing.T) {
			w := get(router, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Missing lat/lon"}`, w.Body.String())
		})
	}
}

func TestTimezone_InvalidCoordinates(t *testing.T) {
	router := newRouter(tzlookup.New())

	for _, target := range []string{
		"/api/timezone?lat=north&lon=2.3522",
		"/api/timezone?lat=91&lon=0",
		"/api/timezone?lat=0&lon=-181",
	} {
		t.Run(target, func(t *testing.T) {
			w := get(router, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid lat/lon"}`, w.Body.String())
		})
	}
}

func TestTimezone_Paris(t *testing.T) {
	w := get(newRouter(tzlookup.New()), "/api/timezone?lat=48.8566&lon=2.3522")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "Europe/Paris", body["name"])
	offset, ok := body["timezone"].(float64)
	require.True(t, ok, "timezone must be numeric")
	assert.Contains(t, []float64{1, 2}, offset)
}

func TestTimezone_Fallback(t *testing.T) {
	w := get(newRouter(missLookup{}), "/api/timezone?lat=0&lon=-140")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"timezone":0,"name":"Etc/GMT"}`, w.Body.String())
}

func TestTimezone_MethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(missLookup{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/timezone?lat=1&lon=1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
