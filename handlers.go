package logboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nginsight/logboard/analytics"
)

// TrackRequest is the body accepted by the track endpoint. Every field is
// optional; an empty source is recorded as "direct".
type TrackRequest struct {
	Source    string `json:"source"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"user_agent"`
}

// Input limits for the track endpoint.
const (
	maxSourceLen    = 120
	maxReferrerLen  = 2048
	maxUserAgentLen = 512
	maxTrackBody    = 8 << 10
)

// validateTrackRequest checks field lengths. Oversized fields indicate a
// broken client integration, not organic traffic.
func validateTrackRequest(req *TrackRequest) error {
	if len(req.Source) > maxSourceLen {
		return fmt.Errorf("source exceeds maximum length of %d", maxSourceLen)
	}
	if len(req.Referrer) > maxReferrerLen {
		return fmt.Errorf("referrer exceeds maximum length of %d", maxReferrerLen)
	}
	if len(req.UserAgent) > maxUserAgentLen {
		return fmt.Errorf("user_agent exceeds maximum length of %d", maxUserAgentLen)
	}
	return nil
}

func (a *App) handleDashboard(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return Dashboard(a.Config.Name).Render(c.Request().Context(), c.Response())
}

// handleStats recomputes the summary from disk on every call and attaches
// the source tally. The allow-all origin header is set directly so plain
// requests without an Origin header still carry it.
func (a *App) handleStats(c echo.Context) error {
	summary := a.Analyzer.Stats()
	summary.Sources = a.Sources.Tally()

	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	return c.JSON(http.StatusOK, summary)
}

// handleTrack appends one source event for the calling address. A malformed
// body is the one client-visible failure; an append that fails after the
// store opened stays best-effort and the caller still sees success.
func (a *App) handleTrack(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")

	ip := c.RealIP()
	if !a.trackLimiter.allow(ip) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	// Read the body directly rather than binding, so beacon-style posts
	// without a JSON content type still land.
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTrackBody))
	if err != nil {
		a.trackEvents.WithLabelValues("rejected").Inc()
		return c.NoContent(http.StatusInternalServerError)
	}
	// Unmarshal alone would treat the JSON literal null as an empty request,
	// so require an object before decoding.
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		a.trackEvents.WithLabelValues("rejected").Inc()
		return c.NoContent(http.StatusInternalServerError)
	}
	var req TrackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		a.trackEvents.WithLabelValues("rejected").Inc()
		return c.NoContent(http.StatusInternalServerError)
	}
	if err := validateTrackRequest(&req); err != nil {
		a.trackEvents.WithLabelValues("rejected").Inc()
		return c.NoContent(http.StatusInternalServerError)
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.Request().UserAgent()
	}

	outcome := "ok"
	if err := a.Sources.Record(ip, req.Source, req.Referrer, userAgent); err != nil {
		c.Logger().Errorf("track: record source event: %v", err)
		if !errors.Is(err, analytics.ErrAppend) {
			a.trackEvents.WithLabelValues("error").Inc()
			return c.NoContent(http.StatusInternalServerError)
		}
		outcome = "error"
	}

	a.trackEvents.WithLabelValues(outcome).Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(a.started).Round(time.Second).String(),
	})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
