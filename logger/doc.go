// Package logger builds configured slog loggers with context-aware attribute
// injection.
//
// The factory produces JSON (default) or text handlers and wraps them in a
// ContextHandler that runs registered extractors at log time, so values
// carried in the request context - like the resolved tenant - appear on every
// record automatically:
//
//	log := logger.New(
//		logger.WithService("api"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "order created") // includes tenant_id
package logger
