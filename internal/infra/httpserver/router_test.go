package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/healthlens/healthlens-api/internal/application/analysis"
	"github.com/healthlens/healthlens-api/internal/domain/vision"
	"github.com/healthlens/healthlens-api/internal/infra/httpserver"
)

type stubVision struct {
	res   vision.Result
	err   error
	calls int
}

func (s *stubVision) Analyze(ctx context.Context, imageB64, prompt string) (vision.Result, error) {
	s.calls++
	return s.res, s.err
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func newTestRouter(v *stubVision) http.Handler {
	svc := &appanalysis.Service{
		Vision: v,
		Clock:  fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Log:    zerolog.Nop(),
	}
	return httpserver.NewRouter(svc, zerolog.Nop(), httpserver.Options{})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestAnalyzeEndpoint_MissingImage(t *testing.T) {
	v := &stubVision{}
	router := newTestRouter(v)

	req := httptest.NewRequest("POST", "/api/v1/analyze/dental", strings.NewReader(`{"userId":"u1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required field: image", body["error"])
	assert.Zero(t, v.calls, "no network call on validation failure")
}

func TestAnalyzeEndpoint_SoftFailure(t *testing.T) {
	v := &stubVision{res: vision.Result{Text: "The image is too blurry to analyze", Success: false}}
	router := newTestRouter(v)

	req := httptest.NewRequest("POST", "/api/v1/analyze/skin", strings.NewReader(`{"image":"aGVsbG8=","userId":"u1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "The image is too blurry to analyze")
}

func TestAnalyzeEndpoint_HardFailure(t *testing.T) {
	v := &stubVision{err: vision.ErrEmptyCompletion}
	router := newTestRouter(v)

	req := httptest.NewRequest("POST", "/api/v1/analyze/posture", strings.NewReader(`{"image":"aGVsbG8="}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "analysis failed", body["error"])
}

func TestAnalyzeEndpoint_Success(t *testing.T) {
	text := "Concerns:\n- Mild gingivitis\n\nRecommendations:\n- Floss daily\n\nOral hygiene score: 6/10\nYou should see a dentist.\n"
	v := &stubVision{res: vision.Result{Text: text, Success: true}}
	router := newTestRouter(v)

	req := httptest.NewRequest("POST", "/api/v1/analyze/dental", strings.NewReader(`{"image":"aGVsbG8="}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, text, data["analysis"])
	assert.Equal(t, text, data["rawAnalysis"])
	assert.Equal(t, []any{"Mild gingivitis"}, data["concerns"])
	assert.Equal(t, []any{"Floss daily"}, data["recommendations"])
	assert.Equal(t, float64(6), data["hygieneScore"])
	assert.Equal(t, true, data["dentistRecommended"])
	assert.NotContains(t, data, "id", "no id without persistence")
	assert.NotContains(t, data, "nearbyProviders")
}

func TestAnalyzeEndpoint_InvalidJSON(t *testing.T) {
	router := newTestRouter(&stubVision{})

	req := httptest.NewRequest("POST", "/api/v1/analyze/nutrition", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpoint_WrongMethod(t *testing.T) {
	router := newTestRouter(&stubVision{})

	req := httptest.NewRequest("GET", "/api/v1/analyze/dental", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestProvidersEndpoint_RequiresSpecialty(t *testing.T) {
	router := newTestRouter(&stubVision{})

	req := httptest.NewRequest("GET", "/api/v1/providers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// No provider catalog configured in this router.
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubVision{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
