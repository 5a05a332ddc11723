package validlite_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validlite"
	"github.com/dmitrymomot/validlite/binder"
	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/request"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

type profile struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0"`
}

func searchOp(extra ...validlite.Param) validlite.Operation {
	params := []validlite.Param{
		validlite.Value[string]("name", validlite.FromQuery, rule.NotEmpty()),
		validlite.Value[int]("age", validlite.FromQuery, rule.NotNull(), rule.Min(0)),
	}
	return validlite.NewOperation("search", append(params, extra...)...)
}

func jsonRequest(t *testing.T, target, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestResolver_Values(t *testing.T) {
	t.Parallel()

	res := validlite.NewResolver(newValidator(t))

	t.Run("valid", func(t *testing.T) {
		args, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=bob&age=3", nil), searchOp())
		require.NoError(t, err)
		assert.Equal(t, 2, args.Len())

		name, err := validlite.Arg[string](args, "name")
		require.NoError(t, err)
		assert.Equal(t, "bob", name)
		age, err := validlite.Arg[int](args, "age")
		require.NoError(t, err)
		assert.Equal(t, 3, age)
		assert.Equal(t, "bob", args.Index(0))
		assert.Nil(t, args.Index(5))
	})

	t.Run("two failing parameters", func(t *testing.T) {
		_, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=&age=-1", nil), searchOp())
		vf, ok := validlite.AsValidationFailure(err)
		require.True(t, ok)
		require.Equal(t, 2, vf.Errors.ErrorCount())

		name, ok := vf.Errors.FieldError("name")
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(name.Code(), ".NotEmpty"))
		age, ok := vf.Errors.FieldError("age")
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(age.Code(), ".Min"))
		assert.Equal(t, -1, age.Rejected)
		assert.Contains(t, err.Error(), "Validation failed for argument with 2 error(s): ")
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=bob", nil), searchOp())
		vf, ok := validlite.AsValidationFailure(err)
		require.True(t, ok)
		fe, ok := vf.Errors.FieldError("age")
		require.True(t, ok)
		assert.Equal(t, "validator.NotNull", fe.Code())
	})

	t.Run("type mismatch is reported once", func(t *testing.T) {
		_, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=bob&age=old", nil), searchOp())
		vf, ok := validlite.AsValidationFailure(err)
		require.True(t, ok)
		require.Equal(t, 1, vf.Errors.ErrorCount())

		fe, ok := vf.Errors.FieldError("age")
		require.True(t, ok)
		assert.True(t, fe.BindingFailure)
		assert.Equal(t, "old", fe.Rejected)
		assert.Equal(t, binding.TypeMismatchCode, fe.Code())
	})
}

func TestResolver_ErrorsParam(t *testing.T) {
	t.Parallel()

	res := validlite.NewResolver(newValidator(t))

	t.Run("last parameter", func(t *testing.T) {
		op := searchOp(validlite.ErrorsParam("errors"))
		args, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=&age=-1", nil), op)
		require.NoError(t, err)

		errs, err := validlite.Arg[binding.Result](args, "errors")
		require.NoError(t, err)
		assert.Equal(t, 2, errs.ErrorCount())
		assert.Len(t, errs.FieldErrors(""), 2)
	})

	t.Run("first parameter sees later errors", func(t *testing.T) {
		op := validlite.NewOperation("search",
			validlite.ErrorsParam("errors"),
			validlite.Value[string]("name", validlite.FromQuery, rule.NotEmpty()),
			validlite.Value[int]("age", validlite.FromQuery, rule.Min(0)),
		)
		args, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=&age=x", nil), op)
		require.NoError(t, err)

		errs, err := validlite.Arg[binding.Result](args, "errors")
		require.NoError(t, err)
		assert.Len(t, errs.ValidationErrors(), 1)
		assert.Len(t, errs.BindingFailures(), 1)
	})
}

func TestResolver_Beans(t *testing.T) {
	t.Parallel()

	res := validlite.NewResolver(newValidator(t))

	t.Run("flat", func(t *testing.T) {
		op := validlite.NewOperation("createProfile", validlite.Bean[profile]("profile", binder.JSON()))
		_, err := res.Resolve(jsonRequest(t, "/", `{"name":"","age":-2}`), op)
		vf, ok := validlite.AsValidationFailure(err)
		require.True(t, ok)
		require.Equal(t, 2, vf.Errors.ErrorCount())
		_, ok = vf.Errors.FieldError("name")
		assert.True(t, ok)
		_, ok = vf.Errors.FieldError("age")
		assert.True(t, ok)
	})

	t.Run("nested", func(t *testing.T) {
		op := validlite.NewOperation("createProfile",
			validlite.Bean[profile]("profile", binder.JSON()).AsNested(),
			validlite.Value[string]("name", validlite.FromQuery, rule.NotEmpty()),
		)
		_, err := res.Resolve(jsonRequest(t, "/?name=", `{"name":"","age":1}`), op)
		vf, ok := validlite.AsValidationFailure(err)
		require.True(t, ok)
		require.Equal(t, 2, vf.Errors.ErrorCount())

		nested, ok := vf.Errors.FieldError("profile.name")
		require.True(t, ok)
		assert.Equal(t, "validator.required.params.profile.name", nested.Codes[0])
		_, ok = vf.Errors.FieldError("name")
		assert.True(t, ok)
	})

	t.Run("valid bean", func(t *testing.T) {
		op := validlite.NewOperation("createProfile", validlite.Bean[profile]("profile", binder.JSON()))
		args, err := res.Resolve(jsonRequest(t, "/", `{"name":"ann","age":30}`), op)
		require.NoError(t, err)
		p, err := validlite.Arg[*profile](args, "profile")
		require.NoError(t, err)
		assert.Equal(t, &profile{Name: "ann", Age: 30}, p)
	})

	t.Run("json type mismatch", func(t *testing.T) {
		op := validlite.NewOperation("createProfile", validlite.Bean[profile]("profile", binder.JSON()))
		_, err := res.Resolve(jsonRequest(t, "/", `{"name":"ann","age":"old"}`), op)
		vf, ok := validlite.AsValidationFailure(err)
		require.True(t, ok)
		fe, ok := vf.Errors.FieldError("age")
		require.True(t, ok)
		assert.True(t, fe.BindingFailure)
	})

	t.Run("malformed body", func(t *testing.T) {
		op := validlite.NewOperation("createProfile", validlite.Bean[profile]("profile", binder.JSON()))
		_, err := res.Resolve(jsonRequest(t, "/", `{"name":`), op)
		require.Error(t, err)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
		assert.False(t, request.IsValidationFailure(err))
	})

	t.Run("query bean with group", func(t *testing.T) {
		type filter struct {
			Term string `query:"term" json:"term" validate:"required"`
		}
		op := validlite.NewOperation("filter", validlite.Bean[filter]("filter", binder.Query()).InGroups("other"))
		// Struct tags only apply to the default group.
		_, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/", nil), op)
		assert.NoError(t, err)
	})
}

func TestResolver_Sources(t *testing.T) {
	t.Parallel()

	res := validlite.NewResolver(newValidator(t),
		validlite.WithPathExtractor(func(r *http.Request, name string) string {
			return strings.TrimPrefix(r.URL.Path, "/items/")
		}),
	)
	op := validlite.NewOperation("update",
		validlite.Value[int]("id", validlite.FromPath, rule.Min(1)),
		validlite.Value[string]("X-Tenant", validlite.FromHeader, rule.NotBlank()),
		validlite.Value[[]string]("tags", validlite.FromForm, rule.NotEmpty()),
	)

	form := url.Values{"tags": {"a", "b"}}
	r := httptest.NewRequest(http.MethodPost, "/items/7", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-Tenant", "acme")

	args, err := res.Resolve(r, op)
	require.NoError(t, err)
	assert.Equal(t, 7, args.Index(0))
	assert.Equal(t, "acme", args.Index(1))
	assert.Equal(t, []string{"a", "b"}, args.Index(2))

	r = httptest.NewRequest(http.MethodPost, "/items/0", nil)
	_, err = res.Resolve(r, op)
	vf, ok := validlite.AsValidationFailure(err)
	require.True(t, ok)
	assert.Equal(t, 3, vf.Errors.ErrorCount())
}

func TestResolver_Suppressed(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	res := validlite.NewResolver(v)

	var resolveErr error
	h := v.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc, ok := request.FromContext(r.Context())
		require.True(t, ok)
		assert.True(t, rc.Suppressed())
		_, resolveErr = res.Resolve(r, searchOp())
		assert.Nil(t, rc.Merged())
	}))

	r := httptest.NewRequest(http.MethodGet, "/?name=&age=x", nil)
	h.ServeHTTP(httptest.NewRecorder(), r.WithContext(request.Forward(r.Context())))
	assert.NoError(t, resolveErr)
}

func TestResolver_DuplicateValidation(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	res := validlite.NewResolver(v)
	rc := v.NewRequest()
	r := httptest.NewRequest(http.MethodGet, "/?name=", nil)
	p := validlite.Value[string]("name", validlite.FromQuery, rule.NotEmpty())

	_, err := res.ResolveArgument(r, rc, p)
	require.NoError(t, err)
	first := rc.Merged()
	require.Equal(t, 1, first.Len())

	_, err = res.ResolveArgument(r, rc, p)
	require.NoError(t, err)
	assert.Same(t, first, rc.Merged())
	assert.Equal(t, 1, rc.Merged().Len())
	assert.Equal(t, 1, rc.CachedSink().ErrorCount())
}

func TestOperation_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		op   validlite.Operation
	}{
		{"duplicate names", validlite.NewOperation("op",
			validlite.Value[string]("a", validlite.FromQuery),
			validlite.Value[int]("a", validlite.FromQuery))},
		{"empty name", validlite.NewOperation("op", validlite.ErrorsParam(""))},
		{"bean without binder", validlite.NewOperation("op", validlite.Bean[profile]("p"))},
		{"bean of non struct", validlite.NewOperation("op", validlite.Bean[string]("p", binder.Query()))},
		{"dotted name", validlite.NewOperation("op", validlite.Value[string]("user.name", validlite.FromQuery))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.op.Validate(), validlite.ErrInvalidOperation)
		})
	}

	assert.NoError(t, searchOp(validlite.ErrorsParam("errors")).Validate())

	t.Run("dotted name is rejected before resolution", func(t *testing.T) {
		t.Parallel()

		res := validlite.NewResolver(newValidator(t))
		op := validlite.NewOperation("p", validlite.Value[string]("user.name", validlite.FromQuery, rule.NotEmpty()))
		assert.NotPanics(t, func() {
			_, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?user.name=", nil), op)
			assert.ErrorIs(t, err, validlite.ErrInvalidOperation)
		})
	})
}

func TestArg(t *testing.T) {
	t.Parallel()

	res := validlite.NewResolver(newValidator(t))
	args, err := res.Resolve(httptest.NewRequest(http.MethodGet, "/?name=bob&age=1", nil), searchOp())
	require.NoError(t, err)

	_, err = validlite.Arg[string](args, "missing")
	assert.ErrorIs(t, err, validlite.ErrUnknownArgument)
	_, err = validlite.Arg[string](args, "age")
	assert.ErrorIs(t, err, validlite.ErrArgumentType)

	v, ok := args.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "bob", v)
}
