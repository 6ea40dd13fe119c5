// Package middlewares provides the pipeline steps of a StarBurst server.
//
// Every constructor returns an internal.Step (or internal.ErrorStep) whose
// name is one of the Step* constants. The root package composes them in the
// fixed order below; the router step sits between identity-session and static.
//
//	loader, assets, favicon, logger, cookies, body, browse-prefix,
//	method-override, json, urlencoded, session, identity-init,
//	identity-session, router, static, errorhandler (development only)
//
// # Request ID
//
// AccessLog assigns every request an id, taken from X-Request-ID when the
// client sends one. Use RequestIDExtractor with the logger so every record
// written during the request carries it:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//
// # Bodies
//
// Body parses url-encoded, JSON and multipart bodies into Context.Form,
// Context.Body and Context.Files. JSON and URLEncoded parse one encoding
// only and do nothing when the body was already parsed.
//
// # Errors
//
// ErrorHandler is the development diagnostic renderer. It answers any failure
// with the status, the error chain and, for panics, the stack. Without it the
// pipeline answers with the status text only.
package middlewares

// Step names.
const (
	StepLoader          = "loader"
	StepAssets          = "assets"
	StepFavicon         = "favicon"
	StepLogger          = "logger"
	StepCookies         = "cookies"
	StepBody            = "body"
	StepBrowsePrefix    = "browse-prefix"
	StepMethodOverride  = "method-override"
	StepJSON            = "json"
	StepURLEncoded      = "urlencoded"
	StepSession         = "session"
	StepIdentityInit    = "identity-init"
	StepIdentitySession = "identity-session"
	StepStatic          = "static"
	StepErrorHandler    = "errorhandler"
)
