// Package logboard serves visit statistics for a web server's access log.
// It reads a bounded trailing window of the log on every request, so the
// numbers always reflect what is on disk, and it tallies client-reported
// traffic sources from an append-only JSON-lines store fed by a tracking
// endpoint. A small embedded dashboard polls the stats endpoint and renders
// the result.
package logboard

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nginsight/logboard/analytics"
)

// App is the logboard application. It wires together the analyzer, the
// source store, middleware, and routes on an Echo instance.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Analyzer *analytics.Analyzer
	Sources  *analytics.SourceStore

	trackLimiter *trackLimiter
	trackEvents  *prometheus.CounterVec
	metrics      *prometheus.Registry
	customRoutes []func(*App)
	started      time.Time
}

// New creates an App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		metrics: prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start wires the application and serves until the listener fails or the
// app is shut down.
func (a *App) Start() error {
	a.bootstrap()

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// bootstrap builds everything Start needs short of listening, so tests can
// drive the full handler chain through httptest.
func (a *App) bootstrap() {
	a.Analyzer = analytics.NewAnalyzer(a.Config.AccessLog, a.Config.Window)
	a.Sources = analytics.NewSourceStore(a.Config.SourcesPath)
	a.trackLimiter = newTrackLimiter(a.Config.TrackRate, time.Minute)
	a.trackEvents = promauto.With(a.metrics).NewCounterVec(prometheus.CounterOpts{
		Namespace: "logboard",
		Name:      "track_events_total",
		Help:      "Tracking posts by outcome.",
	}, []string{"outcome"})
	a.started = time.Now()

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Dashboard assets ship inside the binary.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	assets := http.FileServer(http.FS(embeddedFS))
	e.GET("/style.css", echo.WrapHandler(assets))
	e.GET("/dashboard.js", echo.WrapHandler(assets))
	e.GET("/track.js", echo.WrapHandler(assets))

	e.GET("/", a.handleDashboard)
	e.GET("/healthz", a.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	api.GET("/stats", a.handleStats)
	api.POST("/track", a.handleTrack)
}

// Shutdown stops the server gracefully, letting in-flight requests finish.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases background resources. Call it when the app is done.
func (a *App) Close() error {
	if a.trackLimiter != nil {
		a.trackLimiter.stop()
	}
	return nil
}
