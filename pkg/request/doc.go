// Package request holds the validation state of a single logical request.
//
// A Context accumulates the results of every validated parameter of one
// operation, binds them into one shared binding.ParameterResult and decides,
// when the last parameter has been processed, whether the accumulated errors
// are raised as a *ValidationFailure or were already claimed by the caller.
//
// Contexts are never shared between requests. Middleware attaches a fresh one
// to every incoming request; FromContext retrieves it. A Context is not safe
// for concurrent use, matching the sequential processing of one request's
// parameters.
package request
