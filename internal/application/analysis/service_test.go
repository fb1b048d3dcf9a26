package analysis_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/healthlens/healthlens-api/internal/application/analysis"
	domain "github.com/healthlens/healthlens-api/internal/domain/analysis"
	"github.com/healthlens/healthlens-api/internal/domain/providers"
	"github.com/healthlens/healthlens-api/internal/domain/vision"
	"github.com/healthlens/healthlens-api/internal/extract"
)

const analysisText = "Concerns:\n- Mild gingivitis\n- Plaque buildup\n\nRecommendations:\n- Floss daily\n\nOral hygiene score: 6/10\n"

var testImage = base64.StdEncoding.EncodeToString([]byte("not really a jpeg"))

type stubVision struct {
	res   vision.Result
	err   error
	calls int
}

func (s *stubVision) Analyze(ctx context.Context, imageB64, prompt string) (vision.Result, error) {
	s.calls++
	return s.res, s.err
}

type stubRepo struct {
	saved []*domain.Record
	err   error
}

func (s *stubRepo) Save(ctx context.Context, rec *domain.Record) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, rec)
	return nil
}

func (s *stubRepo) Get(ctx context.Context, id string) (*domain.Record, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Record, error) {
	return nil, errors.New("not implemented")
}

type stubProviders struct {
	list        []providers.Provider
	err         error
	specialties []string
}

func (s *stubProviders) FindBySpecialty(ctx context.Context, specialty string, limit int) ([]providers.Provider, error) {
	s.specialties = append(s.specialties, specialty)
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func newService(v *stubVision, repo *stubRepo, prov *stubProviders) *appanalysis.Service {
	svc := &appanalysis.Service{
		Vision: v,
		Clock:  fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Log:    zerolog.Nop(),
	}
	if repo != nil {
		svc.Repo = repo
	}
	if prov != nil {
		svc.Providers = prov
	}
	return svc
}

func TestAnalyze_MissingImage(t *testing.T) {
	v := &stubVision{}
	svc := newService(v, nil, nil)

	_, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{UserID: "u1"})

	require.ErrorIs(t, err, appanalysis.ErrMissingImage)
	assert.Equal(t, "Missing required field: image", err.Error())
	assert.Zero(t, v.calls, "vision must not be called on a validation failure")
}

func TestAnalyze_SoftFailureSkipsPersistence(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: "The image is too blurry to analyze", Success: false}}
	repo := &stubRepo{}
	svc := newService(v, repo, nil)

	_, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{
		Image:  testImage,
		UserID: "u1",
	})

	var soft *appanalysis.SoftFailure
	require.ErrorAs(t, err, &soft)
	assert.Contains(t, soft.Error(), "The image is too blurry to analyze")
	assert.Empty(t, repo.saved, "no persistence on soft failure")
}

func TestAnalyze_HardFailurePropagates(t *testing.T) {
	v := &stubVision{err: errors.New("connection refused")}
	svc := newService(v, nil, nil)

	_, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{Image: testImage})

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestAnalyze_SuccessWithPersistence(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: analysisText, Success: true}}
	repo := &stubRepo{}
	svc := newService(v, repo, nil)

	resp, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{
		Image:  testImage,
		UserID: "u1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, []string{"Mild gingivitis", "Plaque buildup"}, resp.Result.Concerns)
	assert.Equal(t, []string{"Floss daily"}, resp.Result.Recommendations)
	assert.True(t, resp.Persistence.Attempted)
	assert.NoError(t, resp.Persistence.Err)

	require.Len(t, repo.saved, 1)
	rec := repo.saved[0]
	assert.Equal(t, resp.ID, rec.ID)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, domain.TypeDental, rec.Type)
	assert.Equal(t, analysisText, rec.RawAnalysis)

	fields, ok := rec.Detail.(extract.DentalFields)
	require.True(t, ok)
	require.NotNil(t, fields.HygieneScore)
	assert.Equal(t, 6, *fields.HygieneScore)
}

func TestAnalyze_PersistenceFailureStillSucceeds(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: analysisText, Success: true}}
	repo := &stubRepo{err: errors.New("db down")}
	svc := newService(v, repo, nil)

	resp, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{
		Image:  testImage,
		UserID: "u1",
	})

	require.NoError(t, err, "persistence is best-effort")
	assert.Empty(t, resp.ID, "no id when the record was not stored")
	assert.True(t, resp.Persistence.Failed())
	assert.Equal(t, []string{"Mild gingivitis", "Plaque buildup"}, resp.Result.Concerns)
}

func TestAnalyze_NoUserSkipsPersistence(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: analysisText, Success: true}}
	repo := &stubRepo{}
	svc := newService(v, repo, nil)

	resp, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{Image: testImage})

	require.NoError(t, err)
	assert.False(t, resp.Persistence.Attempted)
	assert.Empty(t, repo.saved)
}

func TestAnalyze_ProviderLookup(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: analysisText, Success: true}}
	prov := &stubProviders{list: []providers.Provider{{ID: "p1", Name: "Dr. Smith", Specialty: "dentist"}}}
	svc := newService(v, nil, prov)

	resp, err := svc.Analyze(context.Background(), domain.TypeDental, appanalysis.Request{
		Image:         testImage,
		FindProviders: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Lookup.Attempted)
	require.Len(t, resp.NearbyProviders, 1)
	assert.Equal(t, "Dr. Smith", resp.NearbyProviders[0].Name)
	assert.Equal(t, []string{"dentist"}, prov.specialties)
}

func TestAnalyze_ProviderLookupFailureStillSucceeds(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: analysisText, Success: true}}
	prov := &stubProviders{err: errors.New("catalog unavailable")}
	svc := newService(v, nil, prov)

	resp, err := svc.Analyze(context.Background(), domain.TypeStool, appanalysis.Request{
		Image:         testImage,
		FindProviders: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Lookup.Failed())
	assert.Nil(t, resp.NearbyProviders)
	assert.Equal(t, []string{"gastroenterologist"}, prov.specialties)
}

func TestAnalyze_EachTypeGetsMatchingFields(t *testing.T) {
	cases := []struct {
		typ   domain.Type
		check func(t *testing.T, fields any)
	}{
		{domain.TypeDental, func(t *testing.T, f any) { _, ok := f.(extract.DentalFields); assert.True(t, ok) }},
		{domain.TypeSkin, func(t *testing.T, f any) { _, ok := f.(extract.SkinFields); assert.True(t, ok) }},
		{domain.TypePosture, func(t *testing.T, f any) { _, ok := f.(extract.PostureFields); assert.True(t, ok) }},
		{domain.TypeNutrition, func(t *testing.T, f any) { _, ok := f.(extract.NutritionFields); assert.True(t, ok) }},
		{domain.TypeStool, func(t *testing.T, f any) { _, ok := f.(extract.StoolFields); assert.True(t, ok) }},
	}

	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			v := &stubVision{res: vision.Result{Text: analysisText, Success: true}}
			resp, err := newService(v, nil, nil).Analyze(context.Background(), tc.typ, appanalysis.Request{Image: testImage})
			require.NoError(t, err)
			tc.check(t, resp.Fields)
		})
	}
}
