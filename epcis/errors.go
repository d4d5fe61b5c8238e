package epcis

import "fmt"

// ErrorKind classifies generation failures so callers can map them to
// user-facing messages without string matching.
type ErrorKind string

const (
	KindInvalidIdentifier ErrorKind = "invalid_identifier"
	KindCountMismatch     ErrorKind = "count_mismatch"
	KindInvalidHierarchy  ErrorKind = "invalid_hierarchy"
)

// Error is a structured generation failure: a kind plus the offending
// field. Generation is all-or-nothing; the first Error aborts the call.
type Error struct {
	Kind  ErrorKind
	Field string
	msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.msg)
}

func invalidIdentifier(field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidIdentifier, Field: field, msg: fmt.Sprintf(format, args...)}
}

func countMismatch(field, format string, args ...any) *Error {
	return &Error{Kind: KindCountMismatch, Field: field, msg: fmt.Sprintf(format, args...)}
}

func invalidHierarchy(field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidHierarchy, Field: field, msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind of err when it is a generation Error.
func KindOf(err error) (ErrorKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return "", false
}
