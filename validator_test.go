package validlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validlite"
	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/i18n"
	"github.com/dmitrymomot/validlite/pkg/message"
	"github.com/dmitrymomot/validlite/pkg/request"
	"github.com/dmitrymomot/validlite/pkg/result"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

type signup struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=0"`
}

func newValidator(t *testing.T, opts ...validlite.Option) *validlite.Validator {
	t.Helper()
	catalog, err := i18n.NewCatalog(context.Background(), i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"validator": map[string]any{
				"NotEmpty": "must not be empty",
				"NotBlank": "must not be blank",
				"Min":      "must be at least {0}",
				"required": "is required",
				"email":    "must be a valid email",
				"gte":      "must be at least {1}",
			},
			"typeMismatch": "has an invalid value",
		},
		"de": {
			"validator": map[string]any{
				"NotEmpty": "darf nicht leer sein",
				"required": "ist erforderlich",
			},
		},
	}})
	require.NoError(t, err)

	base := []validlite.Option{
		validlite.WithCatalog(catalog),
		validlite.WithLocaleResolver(message.NewLocaleResolver("", "en", "en", "de")),
	}
	return validlite.New(append(base, opts...)...)
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	target := &signup{Name: "", Email: "nope", Age: -1}

	vr, err := v.Validate(context.Background(), target)
	require.NoError(t, err)
	assert.False(t, vr.Passed())
	assert.Equal(t, 3, vr.FragmentCount())

	br := binding.NewBeanResult(target, "signup")
	require.NoError(t, v.BindErrors(vr, binding.Registering(br)))
	require.Equal(t, 3, br.ErrorCount())

	errs := v.Errors("en", br)
	assert.Equal(t, []string{"is required"}, errs["name"])
	assert.Equal(t, []string{"must be a valid email"}, errs["email"])
	assert.Equal(t, []string{"must be at least 0"}, errs["age"])

	de := v.Errors("de", br)
	assert.Equal(t, "ist erforderlich", de.Get("name"))
	// Missing German entries fall back to the default language.
	assert.Equal(t, "must be a valid email", de.Get("email"))
}

func TestValidator_ValidateParameter(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	ctx := i18n.SetLocale(context.Background(), "de")

	vr := v.ValidateParameter(ctx, "name", "", []rule.Rule{rule.NotEmpty()})
	require.False(t, vr.Passed())
	el := vr.Lookup("name")
	require.NotNil(t, el)
	require.Len(t, el.Fragments(), 1)
	assert.Equal(t, "darf nicht leer sein", el.Fragments()[0].Message())

	assert.True(t, v.ValidateParameter(ctx, "name", "bob", []rule.Rule{rule.NotEmpty()}).Passed())
}

func TestValidator_Locale(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	assert.Equal(t, "en", v.Locale(context.Background()))
	assert.Equal(t, "de", v.Locale(i18n.SetLocale(context.Background(), "de-AT")))
	assert.Equal(t, "en", v.Locale(i18n.SetLocale(context.Background(), "fr")))

	forced := newValidator(t, validlite.WithLocaleResolver(message.NewLocaleResolver("de", "en")))
	assert.Equal(t, "de", forced.Locale(i18n.SetLocale(context.Background(), "en")))
}

func TestMergeIntoRequest(t *testing.T) {
	t.Parallel()

	v := newValidator(t)
	ctx := context.Background()
	rc := v.NewRequest()

	a := v.ValidateParameter(ctx, "name", "", []rule.Rule{rule.NotEmpty()})
	b := v.ValidateParameter(ctx, "age", 3, []rule.Rule{rule.Min(0)})

	require.NoError(t, validlite.MergeIntoRequest(rc, "name", a))
	require.NoError(t, validlite.OnLastParameterProcessed(rc, 0, 2, false))
	require.NoError(t, validlite.MergeIntoRequest(rc, "age", b))

	merged := rc.Merged()
	require.NotNil(t, merged)
	assert.Equal(t, 1, merged.Len())
	assert.False(t, merged.Passed())

	err := validlite.OnLastParameterProcessed(rc, 1, 2, false)
	vf, ok := validlite.AsValidationFailure(err)
	require.True(t, ok)
	require.Equal(t, 1, vf.Errors.ErrorCount())
	fe, ok := vf.Errors.FieldError("name")
	require.True(t, ok)
	assert.Equal(t, "validator.NotEmpty", fe.Code())

	assert.NoError(t, validlite.OnLastParameterProcessed(rc, 1, 2, false))
	assert.Equal(t, request.Finalized, rc.State())

	assert.ErrorIs(t, validlite.MergeIntoRequest(nil, "x", result.New()), request.ErrNoContext)
	assert.ErrorIs(t, validlite.OnLastParameterProcessed(nil, 0, 1, false), request.ErrNoContext)
}

func TestValidator_MessagePrefix(t *testing.T) {
	t.Parallel()

	v := newValidator(t, validlite.WithMessagePrefix("errors"))
	rc := v.NewRequest()
	vr := v.ValidateParameter(context.Background(), "name", "", []rule.Rule{rule.NotEmpty()})
	require.NoError(t, validlite.MergeIntoRequest(rc, "name", vr))

	sink, err := rc.Sink()
	require.NoError(t, err)
	fe, ok := sink.FieldError("name")
	require.True(t, ok)
	assert.Equal(t, "errors.NotEmpty", fe.Code())
	// No catalog entry under the prefix: the rule's own message is used.
	assert.Equal(t, "must not be empty", v.Message("en", fe))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yaml := "en:\n  validator:\n    NotEmpty: \"cannot be empty\"\nde:\n  validator:\n    NotEmpty: \"leer\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.yaml"), []byte(yaml), 0o600))

	v, err := validlite.NewFromConfig(context.Background(), validlite.Config{
		MessagePrefix:      "validator",
		DefaultLanguage:    "de",
		FallbackLanguage:   "en",
		SupportedLanguages: []string{"en", "de"},
		TranslationsDir:    dir,
	}, nil)
	require.NoError(t, err)

	vr := v.ValidateParameter(context.Background(), "q", "", []rule.Rule{rule.NotEmpty()})
	assert.Equal(t, "leer", vr.Lookup("q").Fragments()[0].Message())

	_, err = validlite.NewFromConfig(context.Background(), validlite.Config{TranslationsDir: t.TempDir()}, nil)
	assert.ErrorIs(t, err, i18n.ErrNoTranslationsFound)
}
