package adapthttp

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dashboard/internal/app"
	"dashboard/internal/metrics"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Age          *app.AgeService
	Events       *app.EventService
	Measurements *app.MeasurementService
	Growth       *app.GrowthService
	Prices       *app.PriceService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	age          *app.AgeService
	events       *app.EventService
	measurements *app.MeasurementService
	growth       *app.GrowthService
	prices       *app.PriceService
	webDir       string

	clock          app.Clock
	logger         *slog.Logger
	metrics        *metrics.Metrics
	metricsHandler http.Handler
	validate       *validator.Validate
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records request metrics into m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.metricsHandler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
}

// WithClock sets the clock used for calendar timestamps.
func WithClock(c app.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string, opts ...Option) *Server {
	s := &Server{
		age:          svc.Age,
		events:       svc.Events,
		measurements: svc.Measurements,
		growth:       svc.Growth,
		prices:       svc.Prices,
		webDir:       webDir,
		clock:        app.RealClock{},
		logger:       slog.Default(),
		validate:     newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	s.route(api, "/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	s.route(api, "/age", s.handleAge)

	s.route(api, "/events", s.handleEvents)
	s.route(api, "/events.ics", s.handleCalendar)

	s.route(api, "/measurements", s.handleMeasurements)
	s.route(api, "/charts/growth", s.handleChartsGrowth)

	s.route(api, "/prices", s.handlePrices)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.metricsHandler != nil {
		root.Handle("/metrics", s.metricsHandler)
	}
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

// route registers h on mux, instrumented under the path it was registered with.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.metricsMiddleware("/api"+pattern, h))
}
