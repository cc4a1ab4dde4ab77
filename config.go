package logboard

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nginsight/logboard/analytics"
)

// Config holds all configuration for a logboard instance.
type Config struct {
	Name string // Site name shown on the dashboard (default "logboard")

	Addr        string // Listen address (default ":9000")
	AccessLog   string // Access log path (default "/var/log/nginx/access.log")
	SourcesPath string // Tracking store path (default "data/sources.jsonl")

	Window    int // Trailing log lines scanned per stats pass (default 1000)
	TrackRate int // Max tracking posts per address per minute (default 60)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "logboard"
	}
	if c.Addr == "" {
		c.Addr = ":9000"
	}
	if c.AccessLog == "" {
		c.AccessLog = "/var/log/nginx/access.log"
	}
	if c.SourcesPath == "" {
		c.SourcesPath = "data/sources.jsonl"
	}
	if c.Window <= 0 {
		c.Window = analytics.DefaultWindow
	}
	if c.TrackRate <= 0 {
		c.TrackRate = 60
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithRegistry uses reg for all Prometheus metrics instead of the app's own
// registry, for embedding logboard alongside other instrumented services.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.metrics = reg
	}
}
