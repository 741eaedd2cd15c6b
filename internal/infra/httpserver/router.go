package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appreports "github.com/bryanwahyu/labinterpreter/internal/application/reports"
	domai "github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
	"github.com/bryanwahyu/labinterpreter/internal/middleware"
)

// Options configure the HTTP host.
type Options struct {
	MaxUploadBytes int64
	CORSOrigins    []string
	RateLimit      int
	RateWindow     time.Duration
	// Checks are reported by GET /healthz.
	Checks map[string]middleware.HealthChecker
}

type Router struct {
	reportsSvc *appreports.Service
	maxUpload  int64
}

func NewRouter(reportsSvc *appreports.Service, opt Options) http.Handler {
	r := &Router{reportsSvc: reportsSvc, maxUpload: opt.MaxUploadBytes}
	if r.maxUpload <= 0 {
		r.maxUpload = 1 << 20
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(opt.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opt.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}
	mux.Use(middleware.RateLimitMiddleware(opt.RateLimit, opt.RateWindow))

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(opt.Checks))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/preview", r.wrap(r.handlePreview))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/reports", r.wrap(r.handleLatest))
		rt.Get("/reports/{id}", r.wrap(r.handleGet))
		rt.Get("/reports/{id}/download", r.wrap(r.handleDownload))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case appreports.IsInputError(err):
				writeJSON(w, http.StatusBadRequest, domain.Present("", err))
			case errors.Is(err, middleware.ErrUploadTooBig):
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			case errors.Is(err, middleware.ErrNotCSV), errors.Is(err, middleware.ErrInvalidReport), errors.Is(err, errMissingFile):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				log.Printf("http error: method=%s path=%s err=%v", req.Method, req.URL.Path, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}
	}
}

// statusFor maps an analysis outcome to the response code.
func statusFor(err error) int {
	var ae *domai.AnalysisError
	switch {
	case err == nil:
		return http.StatusOK
	case appreports.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.As(err, &ae) && ae.Kind == domai.KindTimeout:
		return http.StatusGatewayTimeout
	case errors.As(err, &ae):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// POST /v1/preview (multipart field "file")
func (r *Router) handlePreview(w http.ResponseWriter, req *http.Request) error {
	f, err := r.upload(w, req)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := r.reportsSvc.Preview(f)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// POST /v1/analyze (multipart field "file")
// The body is always the presentation, failures included.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	f, err := r.upload(w, req)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := r.reportsSvc.Analyze(req.Context(), f)
	middleware.RecordAnalysis(res.ErrorKind)
	if res.ID != "" {
		res.DownloadURL = fmt.Sprintf("/v1/reports/%s/download", res.ID)
	}
	return writeJSON(w, statusFor(err), res)
}

// GET /v1/reports?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.reportsSvc.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateReportID(id); err != nil {
		return err
	}

	rep, err := r.reportsSvc.Get(req.Context(), domain.ReportID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

// GET /v1/reports/{id}/download
func (r *Router) handleDownload(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateReportID(id); err != nil {
		return err
	}

	data, err := r.reportsSvc.Download(req.Context(), domain.ReportID(id))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", domain.DownloadMIME+"; charset=utf-8")
	w.Header().Set("Content-Disposition", domain.ContentDisposition())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, err = w.Write(data)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
