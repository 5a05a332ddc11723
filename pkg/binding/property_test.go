package binding_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/result"
)

// tree builds a result with one element per entry holding n%4 fragments.
// Levels after the first are nested under a field named "child".
func tree(levels ...[]uint8) *result.ValidatedResult {
	if len(levels) == 0 {
		return result.New()
	}
	r := result.New()
	for i, n := range levels[0] {
		field := fmt.Sprintf("f%d", i)
		if n >= 250 {
			field = ""
		}
		fragments := make([]result.Fragment, int(n%4))
		for j := range fragments {
			fragments[j] = result.NewFragment(fmt.Sprintf("R%d", j), "", "violated", j)
		}
		r.Add(result.NewElement(field, n, fragments...))
	}
	r.Add(result.NewNestedElement("child", nil, tree(levels[1:]...)))
	return r
}

func TestBindingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("one registration per fragment", prop.ForAll(
		func(a, b, c []uint8) bool {
			vr := tree(a, b, c)
			r := binding.NewParameterResult("params")
			if err := binding.NewBinder().Bind(vr, binding.Registering(r)); err != nil {
				return false
			}
			if r.ErrorCount() != vr.FragmentCount() {
				return false
			}
			for _, e := range r.AllErrors() {
				if len(e.Codes) == 0 || e.BindingFailure {
					return false
				}
			}
			return r.NestedPath() == ""
		},
		gen.SliceOf(gen.UInt8()),
		gen.SliceOf(gen.UInt8()),
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("nested errors carry qualified paths", prop.ForAll(
		func(b []uint8) bool {
			vr := tree(nil, b)
			r := binding.NewParameterResult("params")
			if err := binding.NewBinder().Bind(vr, binding.Registering(r)); err != nil {
				return false
			}
			for _, e := range r.FieldErrors("") {
				if len(e.Field) < len("child") || e.Field[:len("child")] != "child" {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
