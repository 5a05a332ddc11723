// Package binding converts validation results into field-addressable errors.
//
// A Result collects Error values for one validated object: either a request's
// plain parameters (ParameterResult, a map target) or a struct
// (BeanResult). Binder walks a result.ValidatedResult and registers one Error
// per violated fragment through a Sink:
//
//	r := binding.NewParameterResult("params")
//	err := binding.NewBinder().Bind(vr, binding.Registering(r))
//
// Registering adds fully qualified field errors with resolved message codes.
// Rejecting falls back to Errors.RejectValue for sinks that only support the
// minimal Errors contract.
//
// Fields that already carry a binding failure (a type conversion error
// recorded with RecordBindingFailure) are skipped so they are reported once.
package binding
