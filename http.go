package validlite

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/validlite/binder"
	"github.com/dmitrymomot/validlite/pkg/logger"
)

// HandlerFunc handles a request whose parameters were resolved.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, args Args) error

// ErrorHandler renders an error returned by resolution or by a handler.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// HandleOption configures Handle.
type HandleOption func(*handleConfig)

type handleConfig struct {
	errorHandler ErrorHandler
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) HandleOption {
	return func(c *handleConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Handle adapts fn to net/http: the parameters of op are resolved by res
// before fn runs, and every error is passed to the error handler.
func Handle(res *Resolver, op Operation, fn HandlerFunc, opts ...HandleOption) http.HandlerFunc {
	cfg := handleConfig{errorHandler: DefaultErrorHandler(res.v, res.logger)}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := res.Resolve(r, op)
		if err != nil {
			cfg.errorHandler(w, r, err)
			return
		}
		if err := fn(w, r, args); err != nil {
			cfg.errorHandler(w, r, err)
		}
	}
}

// DefaultErrorHandler renders errors as JSON. Validation failures become 422
// with the localized messages of every collected error, binder errors 400 or
// 415, HTTPError its own status, and anything else 500.
func DefaultErrorHandler(v *Validator, log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status, detail := classifyError(v, r, err)

		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if werr := JSONError(w, status, detail); werr != nil {
			log.ErrorContext(r.Context(), "failed to write error response",
				logger.Error(werr),
				logger.Component("error_handler"))
		}
	}
}

func classifyError(v *Validator, r *http.Request, err error) (int, ErrorDetail) {
	if vf, ok := AsValidationFailure(err); ok {
		locale := v.Locale(r.Context())
		return http.StatusUnprocessableEntity, validationDetail("Validation failed", v.Errors(locale, vf.Errors))
	}

	var verr ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, validationDetail("Validation failed", verr)
	}

	var herr HTTPError
	if errors.As(err, &herr) {
		return herr.Code, ErrorDetail{Code: herr.Key, Message: http.StatusText(herr.Code)}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType, ErrorDetail{Code: ErrUnsupportedMedia.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath):
		return http.StatusBadRequest, ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	return http.StatusInternalServerError, ErrorDetail{
		Code:    ErrInternal.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}
