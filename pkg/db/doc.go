// Package db connects to PostgreSQL through a pgx pool and applies the
// embedded goose migrations.
//
//	pool, err := db.Connect(ctx, db.Config{ConnectionString: dsn})
//	err = db.Migrate(ctx, pool, migrations, "schema_migrations", log)
//
// [Healthcheck] and [Shutdown] return closures for the readiness endpoint and
// the shutdown hooks.
package db
