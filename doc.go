// Package starburst wires the StarBurst auction and classifieds site.
//
// Every request runs through a fixed pipeline of steps. The order is part of
// the contract because later steps read what earlier ones attached:
//
//	loader, assets, favicon, logger, cookies, body, browse-prefix,
//	method-override, json, urlencoded, session, identity-init,
//	identity-session, router, static
//
// In development the errorhandler step renders failures as a diagnostic page.
// Otherwise a failure is answered with its status text only.
//
// # Quick Start
//
//	app, err := starburst.New(
//	    starburst.WithLogger(log),
//	    starburst.WithModels(repository.New(pool)),
//	    starburst.WithIdentity(identity.NewLocal(users)),
//	    starburst.WithSessionStore(session.NewRedisStore(client)),
//	    starburst.WithCookieSecret(secret),
//	    starburst.WithDevelopment(cfg.Env == "development"),
//	)
//	if err != nil {
//	    return err
//	}
//	return app.Run(":3000", starburst.ShutdownHook(redis.Shutdown(client)))
//
// # Routes
//
// Browser views live under /sb, the JSON API under /api. Route handlers are
// supplied as [Handlers]; [WithHandlers] replaces the read-only defaults.
// Guarded routes redirect anonymous requests to /sb/.
package starburst
