// Package server runs the clinic site: the JSON API over echo, the gRPC
// health service and the watcher that keeps the team cache warm. All three
// share one core service graph and stop together on SIGINT, SIGTERM or
// SIGQUIT.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/clinicsite/internal/client/core"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
	"github.com/dmitrijs2005/clinicsite/internal/server/config"
	gs "github.com/dmitrijs2005/clinicsite/internal/server/grpc"
	"github.com/dmitrijs2005/clinicsite/internal/server/handlers"
	"github.com/dmitrijs2005/clinicsite/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	core     *core.Core
	registry *prometheus.Registry
}

// NewApp builds the core services from cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c, err := core.New(ctx, cfg.CMS, log, reg)
	if err != nil {
		return nil, err
	}
	return &App{config: cfg, logger: log, core: c, registry: reg}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// newEcho builds the HTTP router. It does not start listening.
func (app *App) newEcho(ctx context.Context, wg *sync.WaitGroup) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(app.logger))
	e.Use(echomw.Recover())

	var api []echo.MiddlewareFunc
	if app.config.RateLimit > 0 {
		rl := middleware.NewRateLimiter(app.config.Limit(), app.config.RateBurst)
		wg.Add(1)
		go func() {
			defer wg.Done()
			rl.Run(ctx)
		}()
		api = append(api, rl.Middleware())
	}

	handlers.Register(e, app.core.Team, app.core.Auth, app.registry, app.logger, api...)
	return e
}

func (app *App) serveHTTP(ctx context.Context, e *echo.Echo, lis net.Listener) error {
	e.Listener = lis

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc, wg *sync.WaitGroup) {
	lis, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}
	if err := app.serveHTTP(ctx, app.newEcho(ctx, wg), lis); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, s *gs.GRPCServer) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a signal arrives, ctx is cancelled or a listener fails,
// then waits for every component and releases the core.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.GRPCAddr, app.logger)
	watcher := gs.NewWatcher(app.core.Auth, app.core.Team, grpcServer.Health(), app.config.HealthCheckInterval, app.logger)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, &wg)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, grpcServer)
	}()
	go func() {
		defer wg.Done()
		watcher.Run(ctx)
	}()

	wg.Wait()

	app.logger.Info(ctx, "Stopped")
	return app.core.Close()
}
