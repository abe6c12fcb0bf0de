package common

import "errors"

// ErrorKind tags a DomainError so callers can map it to a response without
// string matching.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConflict      ErrorKind = "conflict"
	KindConfiguration ErrorKind = "configuration"
	KindStorage       ErrorKind = "storage"
)

// DomainError carries a human-readable message describing the first violated
// rule. Validation and conflict errors are raised before any write, so they
// never leave the stored document in a partial state.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &DomainError{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) error {
	return &DomainError{Kind: KindConflict, Message: message}
}

func NewConfigurationError(message string) error {
	return &DomainError{Kind: KindConfiguration, Message: message}
}

func NewStorageError(message string) error {
	return &DomainError{Kind: KindStorage, Message: message}
}

func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
