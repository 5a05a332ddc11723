package playground

import "errors"

var (
	ErrInvalidTarget = errors.New("composite validation target must be a struct or a pointer to struct")
	ErrPrecompile    = errors.New("failed to precompile validation metadata")
)
