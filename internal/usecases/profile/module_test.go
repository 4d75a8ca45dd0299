package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
)

type fixedResolver struct {
	res   domain.TimezoneResolution
	calls int
}

func (r *fixedResolver) Resolve(coord domain.Coordinate) domain.TimezoneResolution {
	r.calls++
	return r.res
}

type memRepo struct {
	saved map[string]*domain.StoredProfile
}

func (m *memRepo) GetByUserID(ctx context.Context, userID string) (*domain.StoredProfile, error) {
	p, ok := m.saved[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *memRepo) Upsert(ctx context.Context, profile *domain.StoredProfile) error {
	m.saved[profile.UserID] = profile
	return nil
}

func (m *memRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, ok := m.saved[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(m.saved, userID)
	return nil
}

func ptr(v float64) *float64 { return &v }

var session = &domain.Session{UserID: "user-42", Token: "jwt"}

func newService(res domain.TimezoneResolution) (*Service, *memRepo, *fixedResolver) {
	repo := &memRepo{saved: map[string]*domain.StoredProfile{}}
	resolver := &fixedResolver{res: res}
	return New(repo, resolver, logger.Discard()), repo, resolver
}

func TestSave_FillsOffsetFromResolver(t *testing.T) {
	svc, repo, resolver := newService(domain.TimezoneResolution{OffsetHours: 2, ZoneName: "Europe/Paris"})

	stored, err := svc.Save(context.Background(), session, domain.BirthProfile{
		DateOfBirth: "1990-05-14",
		TimeOfBirth: "08:30",
		Latitude:    ptr(48.8566),
		Longitude:   ptr(2.3522),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, 2.0, stored.TimezoneOffsetHours)
	assert.Equal(t, "Europe/Paris", stored.ZoneName)
	assert.Same(t, stored, repo.saved["user-42"])
}

func TestSave_KeepsCallerOffset(t *testing.T) {
	svc, _, _ := newService(domain.TimezoneResolution{OffsetHours: 2, ZoneName: "Europe/Paris"})

	stored, err := svc.Save(context.Background(), session, domain.BirthProfile{
		DateOfBirth:         "1990-01-14",
		TimeOfBirth:         "08:30",
		Latitude:            ptr(48.8566),
		Longitude:           ptr(2.3522),
		TimezoneOffsetHours: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, stored.TimezoneOffsetHours)
}

func TestSave_Rejections(t *testing.T) {
	svc, repo, _ := newService(domain.FallbackResolution())

	_, err := svc.Save(context.Background(), nil, domain.BirthProfile{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Save(context.Background(), session, domain.BirthProfile{DateOfBirth: "1990-01-01", TimeOfBirth: "10:00"})
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)

	_, err = svc.Save(context.Background(), session, domain.BirthProfile{
		DateOfBirth: "1990-01-01", TimeOfBirth: "10:00", Latitude: ptr(120), Longitude: ptr(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	_, err = svc.Save(context.Background(), session, domain.BirthProfile{
		TimeOfBirth: "10:00", Latitude: ptr(0), Longitude: ptr(0),
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)

	assert.Empty(t, repo.saved)
}

func TestSave_RejectsBlankAndMalformedMoment(t *testing.T) {
	svc, repo, _ := newService(domain.TimezoneResolution{OffsetHours: 2, ZoneName: "Europe/Paris"})

	_, err := svc.Save(context.Background(), session, domain.BirthProfile{
		DateOfBirth: "   ",
		TimeOfBirth: "\t",
		Latitude:    ptr(48.8566),
		Longitude:   ptr(2.3522),
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteProfile)

	_, err = svc.Save(context.Background(), session, domain.BirthProfile{
		DateOfBirth: "1990-13-40",
		TimeOfBirth: "08:30",
		Latitude:    ptr(48.8566),
		Longitude:   ptr(2.3522),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	_, err = svc.Save(context.Background(), session, domain.BirthProfile{
		DateOfBirth: "1990-05-14",
		TimeOfBirth: "noon",
		Latitude:    ptr(48.8566),
		Longitude:   ptr(2.3522),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	assert.Empty(t, repo.saved)
}

func TestGet(t *testing.T) {
	svc, repo, _ := newService(domain.FallbackResolution())

	_, err := svc.Get(context.Background(), session)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	repo.saved["user-42"] = &domain.StoredProfile{UserID: "user-42"}
	got, err := svc.Get(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "user-42", got.UserID)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newService(domain.FallbackResolution())

	assert.ErrorIs(t, svc.Delete(context.Background(), nil), domain.ErrUnauthenticated)
	assert.ErrorIs(t, svc.Delete(context.Background(), session), domain.ErrProfileNotFound)

	repo.saved["user-42"] = &domain.StoredProfile{UserID: "user-42"}
	require.NoError(t, svc.Delete(context.Background(), session))
	assert.Empty(t, repo.saved)
}
