package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"kaset_news/internal/logger"
	"kaset_news/internal/models"
	"kaset_news/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewsRunner runs the news pipeline once.
type NewsRunner interface {
	Run(ctx context.Context, limit int) ([]models.Article, error)
}

// Limits are the article counts of the two call sites plus the hard cap for
// explicit requests.
type Limits struct {
	Preview int
	Page    int
	Max     int
}

// Server holds the HTTP handlers' dependencies.
type Server struct {
	news      NewsRunner
	presenter *view.Presenter
	limits    Limits
	gatherer  prometheus.Gatherer
	templates *template.Template
	router    chi.Router
}

// NewServer wires the routes. gatherer may be nil, in which case /metrics is
// not exposed.
func NewServer(news NewsRunner, presenter *view.Presenter, limits Limits, gatherer prometheus.Gatherer) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		news:      news,
		presenter: presenter,
		limits:    limits,
		gatherer:  gatherer,
		templates: tmpl,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/", s.PreviewPage)
	r.Get("/news", s.NewsPage)

	r.Route("/api/news", func(r chi.Router) {
		r.Get("/", s.GetNews)
		r.Get("/preview", s.GetPreview)
		r.Get("/{limit}", s.GetNewsLimit)
	})

	r.Get("/health", s.HealthCheck)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router = r
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HealthCheck always answers 200; feeds are only contacted on page requests.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// GetNews returns the full list (page limit) as JSON.
func (s *Server) GetNews(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, r, s.limits.Page)
}

// GetPreview returns the preview list as JSON.
func (s *Server) GetPreview(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, r, s.limits.Preview)
}

// GetNewsLimit serves /api/news/{limit}; a missing or invalid limit falls
// back to the page limit and large ones are capped.
func (s *Server) GetNewsLimit(w http.ResponseWriter, r *http.Request) {
	s.writeState(w, r, s.parseLimit(chi.URLParam(r, "limit")))
}

func (s *Server) parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return s.limits.Page
	}
	if limit > s.limits.Max {
		return s.limits.Max
	}
	return limit
}

// PreviewPage renders the home-page news section.
func (s *Server) PreviewPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "preview.html", s.limits.Preview)
}

// NewsPage renders the "all news" page.
func (s *Server) NewsPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "news.html", s.limits.Page)
}

// load runs one pipeline invocation for the request. ok is false when the
// client went away before the run finished; nothing must be written then.
func (s *Server) load(r *http.Request, limit int) (state view.State, ok bool) {
	session := s.presenter.NewSession()
	if err := session.Begin(); err != nil {
		return view.Failure(err), true
	}

	articles, runErr := s.news.Run(r.Context(), limit)
	state, err := session.Complete(r.Context(), articles, runErr)
	if err != nil {
		logger.Log.WithField("request_id", middleware.GetReqID(r.Context())).
			Warnf("Dropping news result: %v", err)
		return state, false
	}
	return state, true
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, limit int) {
	state, ok := s.load(r, limit)
	if !ok {
		return
	}
	status := http.StatusOK
	if state.Status == view.StatusFailure {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, state)
}

type pageData struct {
	State       view.State
	Loading     string
	ErrorTitle  string
	ViewAllLink string
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, limit int) {
	state, ok := s.load(r, limit)
	if !ok {
		return
	}
	data := pageData{
		State:       state,
		Loading:     view.LoadingMessage,
		ErrorTitle:  view.ErrorTitle,
		ViewAllLink: "/news",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.Errorf("Render %s failed: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Errorf("Failed to encode response: %v", err)
	}
}
