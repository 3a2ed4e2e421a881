package hull

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fixed diagnostic strings. These exact texts are part of the contract
// and must not be reworded.
const (
	msgTooFewPoints  = "less than four input points specified"
	msgBadCoordCount = "coordinate slice length is not a multiple of 3"
	msgCoincident    = "Input points appear to be coincident"
	msgColinear      = "Input points appear to be colinear"
	msgCoplanar      = "Input points appear to be coplanar"
)

// InputError reports that the input violates a precondition for hull
// construction: insufficient, coincident, colinear, or coplanar points.
// It is recoverable, the caller can retry with different input.
type InputError struct {
	msg   string
	cause error
}

func newInputError(msg string) *InputError {
	return &InputError{msg: msg, cause: errors.New(msg)}
}

func (e *InputError) Error() string { return e.msg }
func (e *InputError) Unwrap() error { return e.cause }

// InternalError reports that a topological invariant failed mid
// construction. It is never expected on well-formed input and is fatal
// for the build in progress; no partial result is returned.
type InternalError struct {
	msg   string
	cause error
}

func newInternalErrorf(format string, args ...interface{}) *InternalError {
	msg := fmt.Sprintf(format, args...)
	return &InternalError{msg: msg, cause: errors.New(msg)}
}

func (e *InternalError) Error() string { return "internal error: " + e.msg }
func (e *InternalError) Unwrap() error { return e.cause }
