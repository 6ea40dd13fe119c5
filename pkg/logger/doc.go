// Package logger builds the JSON slog logger used across the site.
//
// Context extractors inject request-scoped attributes, such as the request id,
// into every record logged with a context:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithExtractors(requestID),
//	)
//	log.InfoContext(ctx, "request served")
//
// With a Sentry DSN configured, records are also forwarded to Sentry: errors
// become issues and warnings are kept as breadcrumb logs. An empty DSN leaves
// stdout as the only destination.
package logger
