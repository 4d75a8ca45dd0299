package astroApi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
)

type recordingProvider struct {
	payloads []json.RawMessage
	tokens   []string
	result   *domain.ChartResult
	err      error
}

func (p *recordingProvider) FetchPlanetPositions(ctx context.Context, payload json.RawMessage, sessionToken string) (*domain.ChartResult, error) {
	p.payloads = append(p.payloads, payload)
	p.tokens = append(p.tokens, sessionToken)
	return p.result, p.err
}

func ptr(v float64) *float64 { return &v }

var settings = domain.ChartSettings{ObservationPoint: "topocentric", Ayanamsha: "sayana"}

func TestAssembleRequest(t *testing.T) {
	svc := New(&recordingProvider{}, settings, logger.Discard())

	req, err := svc.AssembleRequest(domain.BirthProfile{
		ID:                  "user-1",
		DateOfBirth:         "1990-05-14",
		TimeOfBirth:         "08:30:15",
		Latitude:            ptr(0),
		Longitude:           ptr(-0.1276),
		TimezoneOffsetHours: ptr(5.5),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ChartRequest{
		Year: 1990, Month: 5, Date: 14,
		Hours: 8, Minutes: 30, Seconds: 15,
		Latitude: 0, Longitude: -0.1276, Timezone: 5.5,
		Settings: settings,
	}, req)
}

func TestAssembleRequest_ShortTimeAndISODate(t *testing.T) {
	svc := New(&recordingProvider{}, settings, logger.Discard())

	req, err := svc.AssembleRequest(domain.BirthProfile{
		DateOfBirth:         "1990-05-14T00:00:00Z",
		TimeOfBirth:         "23:05",
		Latitude:            ptr(1),
		Longitude:           ptr(2),
		TimezoneOffsetHours: ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 14, req.Date)
	assert.Equal(t, 23, req.Hours)
	assert.Equal(t, 0, req.Seconds)
}

func TestAssembleRequest_InvalidValues(t *testing.T) {
	svc := New(&recordingProvider{}, settings, logger.Discard())
	base := domain.BirthProfile{
		DateOfBirth: "1990-05-14", TimeOfBirth: "08:30",
		Latitude: ptr(1), Longitude: ptr(2), TimezoneOffsetHours: ptr(0),
	}

	badDate := base
	badDate.DateOfBirth = "14/05/1990"
	_, err := svc.AssembleRequest(badDate)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	badTime := base
	badTime.TimeOfBirth = "half past eight"
	_, err = svc.AssembleRequest(badTime)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	noOffset := base
	noOffset.TimezoneOffsetHours = nil
	_, err = svc.AssembleRequest(noOffset)
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)
}

func TestFetchChart_SerializesOnce(t *testing.T) {
	provider := &recordingProvider{result: &domain.ChartResult{Raw: json.RawMessage(`{}`)}}
	svc := New(provider, settings, logger.Discard())

	_, err := svc.FetchChart(context.Background(), domain.ChartRequest{Year: 2000, Month: 1, Date: 1, Settings: settings}, "tok")
	require.NoError(t, err)

	require.Len(t, provider.payloads, 1)
	assert.JSONEq(t, `{"year":2000,"month":1,"date":1,"hours":0,"minutes":0,"seconds":0,"latitude":0,"longitude":0,"timezone":0,"settings":{"observation_point":"topocentric","ayanamsha":"sayana"}}`, string(provider.payloads[0]))
	assert.Equal(t, []string{"tok"}, provider.tokens)
}

func TestFetchPlanetPositions_PropagatesDownstreamError(t *testing.T) {
	provider := &recordingProvider{err: domain.NewDownstreamError(503, "maintenance", nil)}
	svc := New(provider, settings, logger.Discard())

	_, err := svc.FetchPlanetPositions(context.Background(), json.RawMessage(`{}`), "")

	de, ok := domain.AsDownstreamError(err)
	require.True(t, ok)
	assert.Equal(t, "maintenance", de.Message)
}
