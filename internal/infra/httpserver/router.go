package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	appanalysis "github.com/healthlens/healthlens-api/internal/application/analysis"
	domain "github.com/healthlens/healthlens-api/internal/domain/analysis"
	"github.com/healthlens/healthlens-api/internal/domain/providers"
	"github.com/healthlens/healthlens-api/internal/middleware"
)

// Router exposes the five analysis endpoints plus the read side (stored
// analyses, provider catalog, health).
type Router struct {
	svc       *appanalysis.Service
	repo      domain.Repository
	providers providers.Repository
	log       zerolog.Logger
}

// Options carries the optional router collaborators.
type Options struct {
	Repo           domain.Repository
	Providers      providers.Repository
	HealthCheckers map[string]middleware.HealthChecker
	AllowedOrigins []string
}

func NewRouter(svc *appanalysis.Service, log zerolog.Logger, opts Options) http.Handler {
	r := &Router{svc: svc, repo: opts.Repo, providers: opts.Providers, log: log}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.RequestLogger(log))

	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Post("/analyze/dental", r.analyze(domain.TypeDental))
		rt.Post("/analyze/skin", r.analyze(domain.TypeSkin))
		rt.Post("/analyze/posture", r.analyze(domain.TypePosture))
		rt.Post("/analyze/nutrition", r.analyze(domain.TypeNutrition))
		rt.Post("/analyze/stool", r.analyze(domain.TypeStool))

		rt.Get("/analyses/{id}", r.getAnalysis)
		rt.Get("/users/{userId}/analyses", r.listAnalyses)
		rt.Get("/providers", r.listProviders)
	})

	return mux
}

type analyzeRequest struct {
	Image    string `json:"image"`
	UserID   string `json:"userId"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	FindProviders bool           `json:"findProviders"`
	Metadata      map[string]any `json:"metadata"`
}

// POST /api/v1/analyze/{category}
func (r *Router) analyze(typ domain.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		svcReq := appanalysis.Request{
			Image:         body.Image,
			UserID:        body.UserID,
			FindProviders: body.FindProviders,
			Metadata:      body.Metadata,
		}
		if body.Location != nil {
			svcReq.Location = &appanalysis.Location{
				Latitude:  body.Location.Latitude,
				Longitude: body.Location.Longitude,
			}
		}

		resp, err := r.svc.Analyze(req.Context(), typ, svcReq)
		if err != nil {
			var soft *appanalysis.SoftFailure
			switch {
			case errors.Is(err, appanalysis.ErrMissingImage):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.As(err, &soft):
				writeError(w, http.StatusBadRequest, soft.Error())
			default:
				r.log.Error().Err(err).Str("type", string(typ)).Msg("analysis failed")
				writeError(w, http.StatusInternalServerError, "analysis failed")
			}
			return
		}

		writeJSON(w, http.StatusOK, envelope{Success: true, Data: buildData(resp)})
	}
}

// GET /api/v1/analyses/{id}
func (r *Router) getAnalysis(w http.ResponseWriter, req *http.Request) {
	if r.repo == nil {
		writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}
	rec, err := r.repo.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "analysis not found")
			return
		}
		r.log.Error().Err(err).Msg("failed to load analysis")
		writeError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rec})
}

// GET /api/v1/users/{userId}/analyses?limit=20
func (r *Router) listAnalyses(w http.ResponseWriter, req *http.Request) {
	if r.repo == nil {
		writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.repo.ListByUser(req.Context(), chi.URLParam(req, "userId"), limit)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to list analyses")
		writeError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: list})
}

// GET /api/v1/providers?specialty=dentist&limit=10
func (r *Router) listProviders(w http.ResponseWriter, req *http.Request) {
	if r.providers == nil {
		writeError(w, http.StatusNotFound, "provider catalog is not configured")
		return
	}
	specialty := req.URL.Query().Get("specialty")
	if specialty == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: specialty")
		return
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.providers.FindBySpecialty(req.Context(), specialty, limit)
	if err != nil {
		r.log.Error().Err(err).Str("specialty", specialty).Msg("provider lookup failed")
		writeError(w, http.StatusInternalServerError, "provider lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: list})
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// buildData flattens the response into the wire shape: generic fields plus
// the category fields at the same level.
func buildData(resp *appanalysis.Response) map[string]any {
	data := map[string]any{
		"analysis":        resp.Result.Analysis,
		"concerns":        resp.Result.Concerns,
		"recommendations": resp.Result.Recommendations,
		"rawAnalysis":     resp.Result.Analysis,
		"created_at":      resp.CreatedAt,
	}
	if resp.ID != "" {
		data["id"] = resp.ID
	}
	if resp.ImageURL != "" {
		data["imageUrl"] = resp.ImageURL
	}
	if resp.NearbyProviders != nil {
		data["nearbyProviders"] = resp.NearbyProviders
	}

	// Inline the category fields via a JSON round-trip; they are plain
	// structs with stable tags.
	if resp.Fields != nil {
		if b, err := json.Marshal(resp.Fields); err == nil {
			var m map[string]any
			if err := json.Unmarshal(b, &m); err == nil {
				for k, v := range m {
					data[k] = v
				}
			}
		}
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}
