package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validlite"
	"github.com/dmitrymomot/validlite/pkg/i18n"
	"github.com/dmitrymomot/validlite/pkg/logger"
)

func newRoutes(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	catalog, err := i18n.NewCatalog(ctx, i18n.NewFSAdapter(translations, "translations"))
	require.NoError(t, err)

	cfg := validlite.Config{MessagePrefix: "validator", FallbackLanguage: "en", SupportedLanguages: []string{"en", "de"}}
	v, err := validlite.NewFromConfig(ctx, cfg, logger.Discard(), validlite.WithCatalog(catalog))
	require.NoError(t, err)
	require.NoError(t, v.Precompile(ctx, createUser{}, listUsers{}))
	return routes(v, cfg, logger.Discard())
}

func details(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var body validlite.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Details
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	h := newRoutes(t)
	serve := func(r *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	t.Run("create user", func(t *testing.T) {
		body := `{"name":"Ann","email":"ann@example.com","age":30,"password":"secret123","confirm":"secret123"}`
		r := httptest.NewRequest(http.MethodPost, "/users?notify=true", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusCreated, serve(r).Code)
	})

	t.Run("create user with nested errors", func(t *testing.T) {
		body := `{"name":"A","email":"ann@example.com","password":"secret123","confirm":"other","address":{"city":"","zip":"123"}}`
		r := httptest.NewRequest(http.MethodPost, "/users?notify=maybe", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Accept-Language", "de")
		rec := serve(r)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		d := details(t, rec)
		assert.Equal(t, []string{"muss mindestens 2 Zeichen lang sein"}, d["name"])
		assert.Equal(t, []string{"muss mit Password übereinstimmen"}, d["confirm"])
		assert.Contains(t, d, "address.city")
		assert.Contains(t, d, "address.zip")
		assert.Equal(t, []string{"hat einen ungültigen Wert"}, d["notify"])
	})

	t.Run("list users in admin group", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/users?page=0&status=unknown&limit=500", nil))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		d := details(t, rec)
		assert.Contains(t, d, "page")
		assert.Contains(t, d, "status")
		assert.Equal(t, []string{"must be between 1 and 100"}, d["limit"])

		assert.Equal(t, http.StatusOK, serve(httptest.NewRequest(http.MethodGet, "/users?page=1&status=active&limit=10", nil)).Code)
	})

	t.Run("get user", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users/7", nil)
		r.Header.Set("X-Tenant", "acme")
		assert.Equal(t, http.StatusOK, serve(r).Code)

		r = httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		rec := serve(r)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		d := details(t, rec)
		assert.Contains(t, d["id"], "has an invalid value")
		assert.Contains(t, d, "X-Tenant")
	})

	t.Run("subscription errors are handled by the handler", func(t *testing.T) {
		form := url.Values{"email": {"nope"}, "plan": {"gold"}}
		r := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(r)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data struct {
				Subscribed bool                `json:"subscribed"`
				Errors     map[string][]string `json:"errors"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Data.Subscribed)
		assert.Contains(t, body.Data.Errors, "email")
		assert.Contains(t, body.Data.Errors, "plan")
	})

	t.Run("health", func(t *testing.T) {
		rec := serve(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, "ALIVE", rec.Body.String())
	})
}
