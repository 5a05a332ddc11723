// Package binder populates request structs from query strings, form bodies,
// JSON bodies and path parameters.
//
// Binders keep going after a field fails to convert and report every failure
// at once as FieldErrors, so callers can record them as binding failures and
// still validate the remaining fields:
//
//	var req SearchRequest
//	err := binder.Query()(r, &req)
//	if fes, ok := binder.AsFieldErrors(err); ok {
//	    // one entry per unconvertible field
//	}
//
// Struct tags select the parameter name (`query:"q"`, `form:"name"`,
// `path:"id"`); "-" skips a field and an untagged field uses its lowercased
// Go name. Failures are reported under the field's json name, which is the
// name validation results use.
package binder
