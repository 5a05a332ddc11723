package message

import (
	"reflect"
	"strings"
)

// CodeFormat controls how an error code is joined with object and field names.
type CodeFormat int

const (
	// PrefixErrorCode produces "code.object.field".
	PrefixErrorCode CodeFormat = iota
	// PostfixErrorCode produces "object.field.code".
	PostfixErrorCode
)

// CodeSeparator joins the parts of a message code.
const CodeSeparator = "."

// CodesResolver builds message codes for validation errors.
type CodesResolver interface {
	ResolveCodes(code, objectName, field string, typ reflect.Type) []string
	ResolveObjectCodes(code, objectName string) []string
}

// DefaultCodesResolver is the standard CodesResolver. Prefix, when set, is
// prepended to every produced code.
type DefaultCodesResolver struct {
	Prefix string
	Format CodeFormat
}

var _ CodesResolver = DefaultCodesResolver{}

// ResolveObjectCodes returns "code.object" and "code".
func (r DefaultCodesResolver) ResolveObjectCodes(code, objectName string) []string {
	return []string{
		r.postProcess(r.join(code, objectName, "")),
		r.postProcess(code),
	}
}

// ResolveCodes returns, in order and without duplicates: the code qualified
// by object name and full field path, by the field path alone, by the last
// path segment, by the field type, and the bare code. Every field form is
// also produced with its index keys stripped ("items[0].name" also yields
// "items.name").
func (r DefaultCodesResolver) ResolveCodes(code, objectName, field string, typ reflect.Type) []string {
	var codes []string
	seen := make(map[string]struct{})
	add := func(c string) {
		c = r.postProcess(c)
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		codes = append(codes, c)
	}

	fields := fieldVariants(field, nil)
	for _, f := range fields {
		add(r.join(code, objectName, f))
	}
	if i := strings.LastIndex(field, CodeSeparator); i >= 0 {
		fields = fieldVariants(field[i+1:], fields)
	}
	for _, f := range fields {
		add(r.join(code, "", f))
	}
	if typ != nil {
		add(r.join(code, "", typeName(typ)))
	}
	add(code)
	return codes
}

func (r DefaultCodesResolver) join(code, objectName, field string) string {
	parts := make([]string, 0, 3)
	if r.Format == PostfixErrorCode {
		for _, p := range []string{objectName, field, code} {
			if p != "" {
				parts = append(parts, p)
			}
		}
	} else {
		for _, p := range []string{code, objectName, field} {
			if p != "" {
				parts = append(parts, p)
			}
		}
	}
	return strings.Join(parts, CodeSeparator)
}

func (r DefaultCodesResolver) postProcess(code string) string {
	if r.Prefix == "" {
		return code
	}
	return r.Prefix + code
}

// fieldVariants appends field and each form of it with the innermost
// remaining index key removed.
func fieldVariants(field string, list []string) []string {
	if field == "" {
		return list
	}
	list = append(list, field)
	plain := field
	for {
		open := strings.LastIndexByte(plain, '[')
		if open < 0 {
			return list
		}
		closing := strings.IndexByte(plain[open:], ']')
		if closing < 0 {
			return list
		}
		plain = plain[:open] + plain[open+closing+1:]
		list = append(list, plain)
	}
}

func typeName(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.String()
}
