// Package logger builds *slog.Logger values with functional options.
//
// New selects a text or JSON handler, applies a level and static attributes,
// and wraps the handler so ContextExtractor callbacks can add request-scoped
// attributes, such as the validation context ID, to every record.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "validlite-demo"),
//		logger.WithContextExtractors(request.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "request validated", logger.Operation("createUser"), logger.ErrorCount(0))
//
// Attribute helpers in this package keep key names consistent.
package logger
