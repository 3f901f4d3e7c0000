package plan

import (
	"errors"
	"fmt"
)

// Kind categorizes merge errors.
type Kind string

const (
	// KindMalformedInput indicates a document is not valid JSON.
	KindMalformedInput Kind = "MALFORMED_INPUT"

	// KindInvalidShape indicates a document is neither an object nor an
	// array of objects.
	KindInvalidShape Kind = "INVALID_SHAPE"

	// KindInvalidKeySet indicates the key set is empty or names an empty field.
	KindInvalidKeySet Kind = "INVALID_KEY_SET"

	// KindMalformedPlan indicates plan text fails to parse or lacks required
	// structure.
	KindMalformedPlan Kind = "MALFORMED_PLAN"

	// KindInvalidOption indicates an unknown resolution policy or other
	// builder option.
	KindInvalidOption Kind = "INVALID_OPTION"
)

// Kinds lists every error kind.
var Kinds = []Kind{
	KindMalformedInput,
	KindInvalidShape,
	KindInvalidKeySet,
	KindMalformedPlan,
	KindInvalidOption,
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown error kind %q", s)
}

// Side identifies which input document an error refers to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Error is the failure value returned by plan building and execution.
//
// Error carries a Kind for programmatic handling and a human-readable
// Message. Side is set for document errors.
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Side identifies the offending document, if any.
	Side Side

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Side != "" {
		msg = fmt.Sprintf("%s: %s document: %s", e.Kind, e.Side, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewMalformedInputError creates an error for a document that fails to parse.
func NewMalformedInputError(side Side, err error) *Error {
	return &Error{
		Kind:    KindMalformedInput,
		Side:    side,
		Message: "not valid JSON",
		Err:     err,
	}
}

// NewInvalidShapeError creates an error for a document of the wrong shape.
func NewInvalidShapeError(side Side, format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidShape,
		Side:    side,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidKeySetError creates an error for an unusable key set.
func NewInvalidKeySetError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidKeySet,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewMalformedPlanError creates an error for plan text that cannot be used.
func NewMalformedPlanError(err error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindMalformedPlan,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
