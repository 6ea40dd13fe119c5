package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adness/starburst/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App serves requests through a fixed pipeline.
// App is immutable after creation; all configuration is done via New().
type App struct {
	handler    http.Handler
	pipeline   *Pipeline
	routes     *RouteTable
	logger     *slog.Logger
	health     *healthConfig
	steps      []Step
	errorSteps []ErrorStep
	trustProxy bool
}

// New creates an application with the given options.
//
// Example:
//
//	table := internal.BuildRoutes(registerRoutes)
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithSteps(loader, cookies, session, table.Step()),
//	    internal.WithRoutes(table),
//	)
func New(opts ...Option) *App {
	a := &App{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(a)
	}

	a.pipeline = NewPipeline(a.logger, a.steps, a.errorSteps...)
	a.steps, a.errorSteps = nil, nil
	a.handler = a.setupRouter()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// StepNames lists the pipeline steps in execution order.
func (a *App) StepNames() []string {
	return a.pipeline.Names()
}

// Routes lists the route table in registration order.
func (a *App) Routes() []RouteInfo {
	if a.routes == nil {
		return nil
	}
	return a.routes.Routes()
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run starts the HTTP server on addr and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":3000",
//	    internal.ShutdownHook(db.Shutdown(pool)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	return serveUntilSignal(a, newRuntimeConfig(addr, a.logger, opts))
}

// setupRouter mounts the health endpoints and hands every other request to
// the pipeline.
func (a *App) setupRouter() http.Handler {
	r := chi.NewRouter()
	if a.trustProxy {
		r.Use(middleware.RealIP)
	}

	if a.health != nil {
		r.Get(a.health.livenessPath, livenessHandler())
		r.Get(a.health.readinessPath, readinessHandler(a.health.checks, a.logger))
	}

	r.Handle("/*", http.HandlerFunc(a.serve))
	return r
}

func (a *App) serve(w http.ResponseWriter, r *http.Request) {
	c := NewContext(NewResponseWriter(w), r, a.logger)
	a.pipeline.Serve(c)
}
