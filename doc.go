// Package validlite validates the parameters of one logical request and
// aggregates every violation into a single, localized error report.
//
// A Validator ties the collaborators together: a field rule engine
// (pkg/rule), a struct tag engine over go-playground/validator
// (pkg/playground), a message catalog (pkg/i18n) and the binding algorithm
// that turns validation results into field errors (pkg/binding).
//
// Handlers declare their parameters as an Operation. The Resolver binds and
// validates each parameter in order, merges the results into the request's
// validation context (pkg/request) and, after the last parameter, either
// returns the arguments or a *request.ValidationFailure carrying all errors.
// An ErrorsParam receives the collected errors instead, and the request never
// fails on validation.
//
//	type createUser struct {
//		Name  string `json:"name" validate:"required"`
//		Email string `json:"email" validate:"required,email"`
//	}
//
//	op := validlite.NewOperation("createUser",
//		validlite.Bean[createUser]("user", binder.JSON()),
//		validlite.Value[bool]("notify", validlite.FromQuery),
//	)
//
//	r.Post("/users", validlite.Handle(resolver, op, func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
//		user, _ := validlite.Arg[*createUser](args, "user")
//		return validlite.JSON(w, http.StatusCreated, user)
//	}))
//
// Failures are rendered by DefaultErrorHandler as JSON: validation failures
// with 422 and a per-field map of localized messages, binder errors with 400.
package validlite
