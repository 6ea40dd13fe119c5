package starburst

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/adness/starburst/handlers"
	"github.com/adness/starburst/internal"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/middlewares"
	"github.com/adness/starburst/pkg/content"
	"github.com/adness/starburst/pkg/cookie"
	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/pkg/logger"
	"github.com/adness/starburst/pkg/session"
	"github.com/adness/starburst/routes"
	"github.com/adness/starburst/web"
)

// Type aliases - public API
type (
	// App serves requests through the fixed pipeline.
	App = internal.App

	// Context is the per-request state handed to steps and handlers.
	Context = internal.Context

	// Router declares routes.
	Router = internal.Router

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// Step is one unit of per-request processing.
	Step = internal.Step

	// ErrorStep may answer a failure.
	ErrorStep = internal.ErrorStep

	// Handlers are the collaborators bound by the route table.
	Handlers = routes.Handlers

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Models are the look-up-by-id helpers attached to every request.
	Models = repository.Models

	// IdentityProvider authenticates credentials and resolves identities.
	IdentityProvider = identity.Provider

	// SessionStore persists sessions.
	SessionStore = session.Store
)

var (
	ErrNoModels       = errors.New("starburst: models are required")
	ErrNoIdentity     = errors.New("starburst: identity provider is required")
	ErrNoSessionStore = errors.New("starburst: session store is required")
)

// New builds the site. Models, an identity provider, a session store and a
// cookie secret are required.
func New(opts ...Option) (*App, error) {
	s := &site{
		logger:  logger.NewNope(),
		public:  web.Public(),
		assets:  web.Assets(),
		content: web.Content(),
	}
	for _, opt := range opts {
		opt(s)
	}

	switch {
	case s.models == nil:
		return nil, ErrNoModels
	case s.provider == nil:
		return nil, ErrNoIdentity
	case s.store == nil:
		return nil, ErrNoSessionStore
	}

	cookies, err := cookie.New(s.secret, cookie.WithSecure(false))
	if err != nil {
		return nil, fmt.Errorf("starburst: cookies: %w", err)
	}
	manifest, err := middlewares.LoadManifest(s.assets)
	if err != nil {
		return nil, err
	}

	h := s.handlers
	if h == nil {
		d := handlers.New(content.NewLibrary(s.content))
		h = &d
	}

	sessions := internal.NewSessionManager(s.store, cookies,
		append([]internal.SessionOption{internal.WithSessionLogger(s.logger)}, s.sessionOpts...)...,
	)
	table := routes.Table(*h)

	steps := []internal.Step{
		middlewares.Loader(s.models),
		middlewares.Assets(manifest),
		middlewares.Favicon(s.faviconOpts...),
		middlewares.AccessLog(s.logger, s.accessLogOpts...),
		middlewares.Cookies(cookies.Signer()),
		middlewares.Body(s.bodyOpts...),
		middlewares.BrowsePrefix(routes.Browse),
		middlewares.MethodOverride(),
		middlewares.JSON(s.bodyOpts...),
		middlewares.URLEncoded(s.bodyOpts...),
		middlewares.Session(sessions),
		middlewares.IdentityInit(s.provider),
		middlewares.IdentitySession(),
		table.Step(),
		middlewares.Static(s.public),
	}

	var errorSteps []internal.ErrorStep
	if s.dev {
		errorSteps = append(errorSteps, middlewares.ErrorHandler())
	}

	s.logger.Debug("site configured",
		slog.Bool("development", s.dev),
		slog.Int("routes", len(table.Routes())),
		slog.Int("assets", manifest.Len()),
	)

	appOpts := []internal.Option{
		internal.WithLogger(s.logger),
		internal.WithSteps(steps...),
		internal.WithErrorSteps(errorSteps...),
		internal.WithRoutes(table),
		internal.WithTrustProxy(s.trustProxy),
	}
	if s.health != nil {
		appOpts = append(appOpts, internal.WithHealthChecks(s.health...))
	}
	return internal.New(appOpts...), nil
}

type site struct {
	logger        *slog.Logger
	models        Models
	provider      IdentityProvider
	store         SessionStore
	handlers      *Handlers
	public        fs.FS
	assets        fs.FS
	content       fs.FS
	secret        string
	health        []internal.HealthOption
	sessionOpts   []internal.SessionOption
	bodyOpts      []middlewares.BodyOption
	faviconOpts   []middlewares.FaviconOption
	accessLogOpts []middlewares.AccessLogOption
	dev           bool
	trustProxy    bool
}
