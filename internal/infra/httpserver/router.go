package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/credcheck/internal/application/analysis"
	appextract "github.com/bryanwahyu/credcheck/internal/application/extract"
	"github.com/bryanwahyu/credcheck/internal/domain/analysis"
	"github.com/bryanwahyu/credcheck/internal/domain/article"
	"github.com/bryanwahyu/credcheck/internal/domain/history"
	"github.com/bryanwahyu/credcheck/internal/infra/export"
	"github.com/bryanwahyu/credcheck/internal/middleware"
)

const (
	welcomeMessage = "Welcome to the Fake News Detector API. Use /api/analyze to analyze content."
	maxBodyBytes   = 1 << 20
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	// RateCapacity <= 0 disables rate limiting.
	RateCapacity   int
	RateRefill     int
	HealthCheckers map[string]middleware.HealthChecker
	HistoryBackend string
}

type Router struct {
	analysisSvc *appanalysis.Service
	extractSvc  *appextract.Service
}

func NewRouter(analysisSvc *appanalysis.Service, extractSvc *appextract.Service, opts Options) http.Handler {
	r := &Router{analysisSvc: analysisSvc, extractSvc: extractSvc}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if opts.RateCapacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateCapacity, opts.RateRefill))
	}

	mux.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	})
	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/health/ready", middleware.ReadinessHandler(opts.HistoryBackend))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses/recent", r.wrap(r.handleRecent))
		rt.Get("/analyses/history", r.wrap(r.handleHistory))
		rt.Get("/analyses/export", r.wrap(r.handleExport))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/extract", r.wrap(r.handleExtract))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks a client input problem caught at the boundary.
type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error { return badRequestError{err: err} }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequestError
		switch {
		case errors.As(err, &br),
			errors.Is(err, analysis.ErrEmptyContent),
			errors.Is(err, analysis.ErrInvalidContentType):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, history.ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, article.ErrFetch), errors.Is(err, article.ErrParse):
			writeError(w, http.StatusBadGateway, err)
		default:
			zap.S().Errorw("request failed", "path", req.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

// POST /api/analyze
// Body: {"content": "...", "type": "url"|"text"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(fmt.Errorf("invalid request body: %w", err))
	}

	res, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		Content: body.Content,
		Type:    body.Type,
	})
	if err != nil {
		return err
	}
	middleware.RecordAnalysis(res.Verdict)
	return writeJSON(w, http.StatusOK, res)
}

// GET /api/analyses/recent
func (r *Router) handleRecent(w http.ResponseWriter, req *http.Request) error {
	list, err := r.analysisSvc.Recent(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /api/analyses/history?q=&credibility=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	f, err := parseFilter(req)
	if err != nil {
		return err
	}
	list, err := r.analysisSvc.History(req.Context(), f)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /api/analyses/export?q=&credibility=
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	f, err := parseFilter(req)
	if err != nil {
		return err
	}
	list, err := r.analysisSvc.History(req.Context(), f)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("analyses_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return export.WriteHistory(w, list)
}

// GET /api/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	rec, err := r.analysisSvc.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// GET /api/extract?url=
// Article extraction is a placeholder; the response says so in "placeholder".
func (r *Router) handleExtract(w http.ResponseWriter, req *http.Request) error {
	raw := strings.TrimSpace(req.URL.Query().Get("url"))
	if err := middleware.ValidateURL(raw); err != nil {
		return badRequest(err)
	}
	a, err := r.extractSvc.Extract(req.Context(), raw)
	if err != nil {
		return err
	}
	middleware.IncrementExtractions()
	return writeJSON(w, http.StatusOK, a)
}

func parseFilter(req *http.Request) (history.Filter, error) {
	q := middleware.SanitizeString(req.URL.Query().Get("q"))
	if err := middleware.ValidateQuery(q); err != nil {
		return history.Filter{}, badRequest(err)
	}
	cred := strings.ToLower(req.URL.Query().Get("credibility"))
	if err := middleware.ValidateCredibility(cred); err != nil {
		return history.Filter{}, badRequest(err)
	}
	return history.Filter{Query: q, Credibility: cred}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}
