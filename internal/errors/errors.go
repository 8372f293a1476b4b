package errors

import "errors"

// Shared outcome sentinels. Services wrap or return these so handlers can
// branch with errors.Is instead of inspecting driver errors.
var (
	// ErrInUse is the blocked outcome of a guarded delete: the record is
	// still referenced by at least one task and was left intact.
	ErrInUse = errors.New("record is in use and cannot be deleted")

	// ErrNotFound reports that a referenced id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrPermissionDenied reports that the authenticated actor is not
	// allowed to perform the action (not the owner, not the subject user).
	ErrPermissionDenied = errors.New("permission denied")
)

// FieldErrors collects per-field validation messages for form re-rendering.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors reports whether any field failed validation.
func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// ValidationError carries field-level failures out of a service. It is
// recovered locally: the handler re-renders the form with the messages and
// responds 200.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError creates a ValidationError with an empty field map.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(FieldErrors)}
}

// AsValidation unwraps a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
