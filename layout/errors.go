package layout

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code carried by every layout failure.
type Code string

const (
	// Unsatisfiable layouts.
	CodeConflictingConstraints Code = "CONFLICTING_CONSTRAINTS"
	CodePageLimit              Code = "PAGE_LIMIT"
	CodeDynamicOverflow        Code = "DYNAMIC_OVERFLOW"
	CodeNondeterministicLayout Code = "NONDETERMINISTIC_LAYOUT"

	// Drawing failures.
	CodeBackend      Code = "BACKEND"
	CodeMissingGlyph Code = "MISSING_GLYPH"
	CodePanic        Code = "PANIC"

	// Composition failures, raised before pagination starts.
	CodeInvalidTable Code = "INVALID_TABLE"
	CodeInvalidDSL   Code = "INVALID_DSL"
	CodeInvalidStyle Code = "INVALID_STYLE"
)

// LayoutError reports content that cannot be paginated.
type LayoutError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *LayoutError) Error() string { return format("layout", e.Code, e.Message, e.Cause) }
func (e *LayoutError) Unwrap() error { return e.Cause }
func (e *LayoutError) code() Code    { return e.Code }

// NewLayoutError creates a LayoutError with a formatted message.
func NewLayoutError(code Code, msg string, args ...any) *LayoutError {
	return &LayoutError{Code: code, Message: fmt.Sprintf(msg, args...)}
}

// DrawingError reports a failure raised while emitting primitives.
type DrawingError struct {
	Code    Code
	Message string
	// Page is the 1-based page being drawn, or 0 when unknown.
	Page  int
	Cause error
}

func (e *DrawingError) Error() string {
	msg := e.Message
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (page %d)", msg, e.Page)
	}
	return format("drawing", e.Code, msg, e.Cause)
}
func (e *DrawingError) Unwrap() error { return e.Cause }
func (e *DrawingError) code() Code    { return e.Code }

// NewDrawingError wraps cause into a DrawingError.
func NewDrawingError(code Code, cause error, msg string, args ...any) *DrawingError {
	return &DrawingError{Code: code, Message: fmt.Sprintf(msg, args...), Cause: cause}
}

// ComposeError reports invalid content detected while building the tree.
type ComposeError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *ComposeError) Error() string { return format("compose", e.Code, e.Message, e.Cause) }
func (e *ComposeError) Unwrap() error { return e.Cause }
func (e *ComposeError) code() Code    { return e.Code }

// NewComposeError creates a ComposeError with a formatted message.
func NewComposeError(code Code, msg string, args ...any) *ComposeError {
	return &ComposeError{Code: code, Message: fmt.Sprintf(msg, args...)}
}

// WrapComposeError wraps cause into a ComposeError.
func WrapComposeError(code Code, cause error, msg string, args ...any) *ComposeError {
	return &ComposeError{Code: code, Message: fmt.Sprintf(msg, args...), Cause: cause}
}

func format(kind string, code Code, msg string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", kind, code, msg, cause)
	}
	return fmt.Sprintf("%s: %s: %s", kind, code, msg)
}

type coded interface {
	error
	code() Code
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the first layout, drawing or compose error in
// err's chain, or the empty string.
func GetCode(err error) Code {
	var c coded
	if errors.As(err, &c) {
		return c.code()
	}
	return ""
}

// abort carries an error up through Measure and Draw, which have no error
// return. The driver recovers it.
type abort struct{ err error }

// Abort stops the current render with err. It must only be called from inside
// Measure or Draw.
func Abort(err error) {
	panic(abort{err: err})
}

// Recovered extracts the error passed to Abort from a recovered panic value.
func Recovered(r any) (error, bool) {
	if a, ok := r.(abort); ok {
		return a.err, true
	}
	return nil, false
}
