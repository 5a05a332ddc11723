package validlite_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validlite"
	"github.com/dmitrymomot/validlite/binder"
	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/i18n"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	v := newValidator(t)
	res := validlite.NewResolver(v)

	r := chi.NewRouter()
	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages("en", "de"))))
	r.Use(v.Middleware())

	r.Post("/users", validlite.Handle(res,
		validlite.NewOperation("createUser", validlite.Bean[signup]("user", binder.JSON())),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			user, err := validlite.Arg[*signup](args, "user")
			if err != nil {
				return err
			}
			return validlite.JSON(w, http.StatusCreated, user)
		},
	))

	r.Get("/users/{id}", validlite.Handle(res,
		validlite.NewOperation("getUser", validlite.Value[int]("id", validlite.FromPath, rule.Min(1))),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			id, _ := validlite.Arg[int](args, "id")
			if id == 404 {
				return validlite.ErrNotFound
			}
			return validlite.JSON(w, http.StatusOK, map[string]int{"id": id})
		},
	))

	r.Get("/search", validlite.Handle(res,
		validlite.NewOperation("search",
			validlite.Value[string]("q", validlite.FromQuery, rule.NotEmpty()),
			validlite.ErrorsParam("errors"),
		),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			errs, err := validlite.Arg[binding.Result](args, "errors")
			if err != nil {
				return err
			}
			if !errs.HasErrors() {
				return validlite.JSON(w, http.StatusOK, "ok")
			}
			return v.Errors(v.Locale(r.Context()), errs)
		},
	))
	return r
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) validlite.JSONResponse {
	t.Helper()
	var body validlite.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle(t *testing.T) {
	t.Parallel()

	router := newRouter(t)
	serve := func(r *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, r)
		return rec
	}

	t.Run("created", func(t *testing.T) {
		rec := serve(jsonRequest(t, "/users", `{"name":"ann","email":"ann@example.com","age":30}`))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("validation failure", func(t *testing.T) {
		rec := serve(jsonRequest(t, "/users", `{"name":"","email":"bad","age":1}`))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "validation_error", body.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, map[string][]string{
			"name":  {"is required"},
			"email": {"must be a valid email"},
		}, body.Error.Details)
	})

	t.Run("localized", func(t *testing.T) {
		r := jsonRequest(t, "/users", `{"name":"","email":"ann@example.com"}`)
		r.Header.Set("Accept-Language", "de-DE,de;q=0.9")
		body := decodeBody(t, serve(r))
		require.NotNil(t, body.Error)
		assert.Equal(t, []string{"ist erforderlich"}, body.Error.Details["name"])
	})

	t.Run("type mismatch", func(t *testing.T) {
		rec := serve(jsonRequest(t, "/users", `{"name":"ann","email":"ann@example.com","age":"old"}`))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, []string{"has an invalid value"}, body.Error.Details["age"])
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := serve(jsonRequest(t, "/users", `{`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeBody(t, rec).Code)
	})

	t.Run("wrong media type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("name=ann"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(r)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("path parameter", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/users/5", nil)).Code)

		rec := serve(httptest.NewRequest(http.MethodGet, "/users/0", nil))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"must be at least 1"}, decodeBody(t, rec).Error.Details["id"])

		rec = serve(httptest.NewRequest(http.MethodGet, "/users/404", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeBody(t, rec).Code)
	})

	t.Run("errors parameter", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/search?q=go", nil)).Code)

		// The handler returns the errors itself.
		rec := serve(httptest.NewRequest(http.MethodGet, "/search?q=", nil))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, []string{"must not be empty"}, decodeBody(t, rec).Error.Details["q"])
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	h := validlite.DefaultErrorHandler(newValidator(t), nil)
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error", fmt.Errorf("lookup: %w", validlite.ErrNotFound), http.StatusNotFound, "not_found"},
		{"validation error", validlite.ValidationError{"name": {"is required"}}, http.StatusUnprocessableEntity, "validation_error"},
		{"invalid query", fmt.Errorf("%w: page", binder.ErrInvalidQuery), http.StatusBadRequest, "bad_request"},
		{"missing content type", binder.ErrMissingContentType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.code, body.Code)
			require.NotNil(t, body.Error)
			assert.NotContains(t, body.Error.Message, "boom")
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	e := validlite.NewValidationError()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, "validation failed", e.Error())

	e.Add("name", "is required")
	e.Add("age", "must be at least 0")
	e.Add("name", "is too short")
	assert.True(t, e.Has("name"))
	assert.False(t, e.Has("email"))
	assert.Equal(t, "is required", e.Get("name"))
	assert.Equal(t, "validation error: age: must be at least 0, name: is required", e.Error())
}
