package analysis

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthlens/healthlens-api/internal/application"
	domain "github.com/healthlens/healthlens-api/internal/domain/analysis"
	"github.com/healthlens/healthlens-api/internal/domain/providers"
	"github.com/healthlens/healthlens-api/internal/domain/vision"
	"github.com/healthlens/healthlens-api/internal/extract"
	"github.com/healthlens/healthlens-api/internal/infra/ai/prompt"
)

// ErrMissingImage rejects a request without an image payload. The text is
// part of the API contract.
var ErrMissingImage = errors.New("Missing required field: image")

// SoftFailure means the model answered but declined to analyze the image.
// It maps to a 400 and carries the model's own wording.
type SoftFailure struct {
	Text string
}

func (e *SoftFailure) Error() string {
	return "unable to analyze image: " + e.Text
}

// Request is the common input of all five analysis operations.
type Request struct {
	Image         string
	UserID        string
	Location      *Location
	FindProviders bool
	Metadata      map[string]any
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// SideEffect records the outcome of one best-effort branch (persistence,
// provider lookup, image archiving) so callers and tests can tell "skipped"
// from "attempted and failed" without exception semantics.
type SideEffect struct {
	Attempted bool
	Err       error
}

func (s SideEffect) Failed() bool { return s.Attempted && s.Err != nil }

// Response is the assembled analysis outcome. ID stays empty when
// persistence was skipped or failed; NearbyProviders stays nil when lookup
// was not requested or failed.
type Response struct {
	ID              string
	Type            domain.Type
	Result          extract.ParsedResult
	Fields          any
	ImageURL        string
	CreatedAt       time.Time
	NearbyProviders []providers.Provider

	Persistence SideEffect
	Lookup      SideEffect
	Archive     SideEffect
}

// ImageStore archives the raw uploaded image.
type ImageStore interface {
	UploadImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the analysis use-case for every category. Repo,
// Providers and Images are optional; a nil port simply skips its branch.
type Service struct {
	Vision        vision.Client
	Repo          domain.Repository
	Providers     providers.Repository
	Images        ImageStore
	Clock         application.Clock
	Log           zerolog.Logger
	ProviderLimit int
}

// Analyze runs the full pipeline: validate, call the vision model, structure
// the text, then persist / look up providers / archive the image as
// best-effort side branches that never break an already successful analysis.
func (s *Service) Analyze(ctx context.Context, typ domain.Type, req Request) (*Response, error) {
	if strings.TrimSpace(req.Image) == "" {
		return nil, ErrMissingImage
	}

	res, err := s.Vision.Analyze(ctx, req.Image, prompt.For(typ))
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &SoftFailure{Text: res.Text}
	}

	resp := &Response{
		Type:      typ,
		Result:    extract.Parse(res.Text),
		Fields:    extractFields(typ, res.Text),
		CreatedAt: s.Clock.Now(),
	}

	if s.Images != nil {
		resp.Archive = s.archiveImage(ctx, typ, req.Image, resp)
	}
	if req.UserID != "" && s.Repo != nil {
		resp.Persistence = s.persist(ctx, typ, req.UserID, resp)
	}
	if req.FindProviders && s.Providers != nil {
		resp.Lookup = s.lookupProviders(ctx, typ, resp)
	}
	return resp, nil
}

func (s *Service) persist(ctx context.Context, typ domain.Type, userID string, resp *Response) SideEffect {
	rec := &domain.Record{
		ID:              uuid.New().String(),
		UserID:          userID,
		Type:            typ,
		RawAnalysis:     resp.Result.Analysis,
		Concerns:        resp.Result.Concerns,
		Recommendations: resp.Result.Recommendations,
		ImageURL:        resp.ImageURL,
		CreatedAt:       resp.CreatedAt,
		Detail:          resp.Fields,
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		s.Log.Error().Err(err).Str("type", string(typ)).Str("user_id", userID).Msg("failed to persist analysis")
		return SideEffect{Attempted: true, Err: err}
	}
	resp.ID = rec.ID
	return SideEffect{Attempted: true}
}

func (s *Service) lookupProviders(ctx context.Context, typ domain.Type, resp *Response) SideEffect {
	list, err := s.Providers.FindBySpecialty(ctx, typ.Specialty(), s.providerLimit())
	if err != nil {
		s.Log.Error().Err(err).Str("specialty", typ.Specialty()).Msg("provider lookup failed")
		return SideEffect{Attempted: true, Err: err}
	}
	resp.NearbyProviders = list
	return SideEffect{Attempted: true}
}

func (s *Service) archiveImage(ctx context.Context, typ domain.Type, imageB64 string, resp *Response) SideEffect {
	payload, contentType := vision.SplitDataURL(imageB64)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		s.Log.Warn().Err(err).Str("type", string(typ)).Msg("image payload is not valid base64, skipping archive")
		return SideEffect{Attempted: true, Err: err}
	}
	key := string(typ) + "/" + uuid.New().String() + extensionFor(contentType)
	url, err := s.Images.UploadImage(ctx, key, data, contentType)
	if err != nil {
		s.Log.Error().Err(err).Str("key", key).Msg("image archive failed")
		return SideEffect{Attempted: true, Err: err}
	}
	resp.ImageURL = url
	return SideEffect{Attempted: true}
}

func (s *Service) providerLimit() int {
	if s.ProviderLimit > 0 {
		return s.ProviderLimit
	}
	return 10
}

func extractFields(typ domain.Type, text string) any {
	switch typ {
	case domain.TypeDental:
		return extract.Dental(text)
	case domain.TypeSkin:
		return extract.Skin(text)
	case domain.TypePosture:
		return extract.Posture(text)
	case domain.TypeNutrition:
		return extract.Nutrition(text)
	case domain.TypeStool:
		return extract.Stool(text)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
