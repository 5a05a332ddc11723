package request

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey struct{}

type forwardedKey struct{}

// WithContext stores rc in ctx.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the validation context stored in ctx.
func FromContext(ctx context.Context) (*Context, bool) {
	rc, ok := ctx.Value(contextKey{}).(*Context)
	return rc, ok && rc != nil
}

// Forward marks ctx as an internal re-dispatch of the same logical call.
func Forward(ctx context.Context) context.Context {
	return context.WithValue(ctx, forwardedKey{}, true)
}

// IsForwarded reports whether ctx was marked by Forward.
func IsForwarded(ctx context.Context) bool {
	forwarded, _ := ctx.Value(forwardedKey{}).(bool)
	return forwarded
}

// Middleware attaches a new validation context to every request.
// Forwarded requests get a suppressed context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			o := append([]Option{WithSuppressed(IsForwarded(ctx))}, opts...)
			next.ServeHTTP(w, r.WithContext(WithContext(ctx, New(o...))))
		})
	}
}

// LoggerExtractor returns a logger context extractor adding the ID of the
// validation context under the key "validation_id".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if rc, ok := FromContext(ctx); ok {
			return slog.String("validation_id", rc.ID().String()), true
		}
		return slog.Attr{}, false
	}
}
