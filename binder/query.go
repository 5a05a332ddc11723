package binder

import "net/http"

// Func binds request data into v.
type Func func(r *http.Request, v any) error

// Query binds query string parameters using `query` tags.
//
//	type SearchRequest struct {
//		Query string   `query:"q" json:"q"`
//		Page  int      `query:"page" json:"page"`
//		Tags  []string `query:"tags" json:"tags"` // ?tags=go&tags=web or ?tags=go,web
//	}
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindStruct(v, "query", valuesLookup(r.URL.Query()), ErrInvalidQuery)
	}
}
