package normalize

import "fmt"

// CircularError reports a value that transitively contains itself.
type CircularError struct {
	FieldPath string // path where the cycle closed (e.g., "boss.reports[0]")
	FirstSeen string // path where the repeated reference was first visited
}

func (e *CircularError) Error() string {
	return fmt.Sprintf("circular reference detected: %s -> %s", orRoot(e.FirstSeen), orRoot(e.FieldPath))
}

func orRoot(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

// UnsupportedTypeError reports a top-level value with no projection onto
// the normalized value model.
type UnsupportedTypeError struct {
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.TypeName)
}

// Error is the generic normalization failure, retaining the underlying
// message.
type Error struct {
	FieldPath string // field path (e.g., "person.address.street")
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("normalize error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("normalize error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
