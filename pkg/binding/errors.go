package binding

import (
	"errors"
	"fmt"
)

var (
	ErrNoNestedPath = errors.New("cannot pop nested path: no nested path on stack")
	ErrUnknownField = errors.New("unknown field")
	ErrNotReadable  = errors.New("field is not readable")
	ErrNestedOnMap  = fmt.Errorf("nested field paths on a parameter map: %w", errors.ErrUnsupported)
)
