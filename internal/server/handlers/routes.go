package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// Register mounts the API on e. /metrics is served from gatherer and is
// skipped when gatherer is nil. api wraps only the /api group, so health
// and metrics endpoints are not rate limited.
func Register(e *echo.Echo, team services.TeamService, auth services.AuthService, gatherer prometheus.Gatherer, log logging.Logger, api ...echo.MiddlewareFunc) {
	th := NewTeamHandler(auth, team, log)

	g := e.Group("/api", api...)
	g.GET("/team", th.List)
	g.GET("/team/search", th.Search)
	g.GET("/team/:id", th.Get)

	e.GET("/health", NewHealthHandler(auth).Handle)

	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
