package validlite

import (
	"encoding/json"
	"maps"
	"net/http"
)

// JSONResponse is the body of every JSON response.
type JSONResponse struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details maps field paths to
// localized messages.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes data with status.
func JSON(w http.ResponseWriter, status int, data any) error {
	return writeJSON(w, status, JSONResponse{Data: data})
}

// JSONError writes an error body with status.
func JSONError(w http.ResponseWriter, status int, detail ErrorDetail) error {
	return writeJSON(w, status, JSONResponse{Code: detail.Code, Error: &detail})
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func validationDetail(message string, errs ValidationError) ErrorDetail {
	detail := ErrorDetail{Code: "validation_error", Message: message}
	if len(errs) > 0 {
		detail.Details = make(map[string][]string, len(errs))
		maps.Copy(detail.Details, errs)
	}
	return detail
}
