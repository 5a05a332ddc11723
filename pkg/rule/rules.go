package rule

import (
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"
)

// NotNull fails for nil values, nil pointers, nil slices and nil maps.
func NotNull() Rule {
	return Rule{
		ID:      "NotNull",
		Message: "must not be null",
		Check: func(value any) bool {
			_, ok := indirect(value)
			if !ok {
				return false
			}
			v := reflect.ValueOf(value)
			switch v.Kind() {
			case reflect.Slice, reflect.Map:
				return !v.IsNil()
			}
			return true
		},
	}
}

// NotEmpty fails for nil values and empty strings, slices and maps.
func NotEmpty() Rule {
	return Rule{
		ID:      "NotEmpty",
		Message: "must not be empty",
		Check: func(value any) bool {
			n, ok := length(value)
			if !ok {
				_, present := indirect(value)
				return present
			}
			return n > 0
		},
	}
}

// NotBlank fails for strings that are empty after trimming whitespace.
func NotBlank() Rule {
	return Rule{
		ID:      "NotBlank",
		Message: "must not be blank",
		Check: func(value any) bool {
			s, ok := text(value)
			return ok && strings.TrimSpace(s) != ""
		},
	}
}

// Min fails for numbers lower than min. Non-numeric values fail.
func Min(min float64) Rule {
	return Rule{
		ID:      "Min",
		Message: "must be greater than or equal to {0}",
		Args:    []any{min},
		Check: func(value any) bool {
			n, ok := number(value)
			return ok && n >= min
		},
	}
}

// Max fails for numbers greater than max. Non-numeric values fail.
func Max(max float64) Rule {
	return Rule{
		ID:      "Max",
		Message: "must be less than or equal to {0}",
		Args:    []any{max},
		Check: func(value any) bool {
			n, ok := number(value)
			return ok && n <= max
		},
	}
}

// Range fails for numbers outside [min, max].
func Range(min, max float64) Rule {
	return Rule{
		ID:      "Range",
		Message: "must be between {0} and {1}",
		Args:    []any{min, max},
		Check: func(value any) bool {
			n, ok := number(value)
			return ok && n >= min && n <= max
		},
	}
}

// Length fails when the length of a string (in runes), slice or map is outside [min, max].
// Nil values pass; combine with NotNull to require presence.
func Length(min, max int) Rule {
	return Rule{
		ID:      "Length",
		Message: "length must be between {0} and {1}",
		Args:    []any{min, max},
		Check: func(value any) bool {
			if _, ok := indirect(value); !ok {
				return true
			}
			n, ok := length(value)
			return ok && n >= min && n <= max
		},
	}
}

// Pattern fails for strings not matching expr. It panics if expr does not compile.
func Pattern(expr string) Rule {
	re := regexp.MustCompile(expr)
	return Rule{
		ID:      "Pattern",
		Message: "must match {0}",
		Args:    []any{expr},
		Check: func(value any) bool {
			s, ok := text(value)
			return ok && re.MatchString(s)
		},
	}
}

// Email fails for strings that are not a single bare e-mail address.
func Email() Rule {
	return Rule{
		ID:      "Email",
		Message: "must be a valid email address",
		Check: func(value any) bool {
			s, ok := text(value)
			if !ok || s == "" {
				return false
			}
			addr, err := mail.ParseAddress(s)
			return err == nil && addr.Address == s
		},
	}
}

// OneOf fails when the value's string form is not one of allowed.
func OneOf(allowed ...string) Rule {
	return Rule{
		ID:      "OneOf",
		Message: "must be one of [{0}]",
		Args:    []any{strings.Join(allowed, ", ")},
		Check: func(value any) bool {
			v, ok := indirect(value)
			if !ok {
				return false
			}
			s := fmt.Sprint(v.Interface())
			for _, a := range allowed {
				if a == s {
					return true
				}
			}
			return false
		},
	}
}

// Custom wraps an arbitrary check under the given rule id.
func Custom(id, message string, check func(value any) bool, args ...any) Rule {
	return Rule{
		ID:      id,
		Message: message,
		Args:    args,
		Check:   check,
	}
}
