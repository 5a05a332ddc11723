package binder

import (
	"fmt"
	"net/http"
)

// Path binds path parameters using `path` tags. The extractor returns the
// value of a named parameter, for example chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		return bindStruct(v, "path", func(param string) ([]string, bool) {
			value := extractor(r, param)
			return []string{value}, value != ""
		}, ErrInvalidPath)
	}
}
