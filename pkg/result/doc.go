// Package result holds the validation outcome tree produced by rule engines.
//
// A ValidatedResult describes one validated input (a request parameter or a
// struct). It is an ordered list of ElementResult values, one per failed field.
// An element either carries the Fragment values (rule violations) of a plain
// field, or a nested ValidatedResult for a composite field:
//
//	address := result.New(
//	    result.NewElement("city", "", result.NewFragment("NotEmpty", "NotEmpty", "must not be empty")),
//	)
//	user := result.New(
//	    result.NewNestedElement("address", addr, address),
//	)
//	user.Passed() // false
//
// Results from several inputs of the same request are combined with Merge.
// Merge keeps insertion order and never deduplicates elements; Lookup returns
// the most recently added element for a field.
//
// The tree is owned top-down and has no back references. Values are not safe
// for concurrent mutation; a result belongs to a single request.
package result
