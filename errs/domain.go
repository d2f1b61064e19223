package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain taxonomy. Every constructor below tags its ApiErr with one of these
// so callers can branch with errors.Is regardless of the message.
var (
	ErrValidation          = errors.New("validation failed")
	ErrBusinessRule        = errors.New("business rule violated")
	ErrReferenceNotFound   = errors.New("referenced entity not found")
	ErrDuplicateIdentifier = errors.New("identifier already in use")
	ErrNotFound            = errors.New("not found")
)

// NewValidationError reports field-shape violations. details holds one
// "field: message" line per violation.
func NewValidationError(details string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Title:      "Validation Error",
		err:        errors.New(details),
		kind:       ErrValidation,
	}
}

func NewBusinessRuleError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Title:      "Validation Error",
		err:        errors.New(message),
		kind:       ErrBusinessRule,
		Field:      field,
	}
}

// NewReferenceNotFoundError is returned when an association operation names an
// entity that is not persisted.
func NewReferenceNotFoundError(entity string, id int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("No %s exists with the ID: %d", entity, id),
		kind:       ErrReferenceNotFound,
	}
}

func NewDuplicateIdentifierError(entity string, id int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("The %s ID %d is already in use", entity, id),
		kind:       ErrDuplicateIdentifier,
		Field:      "id",
	}
}

// NewNotFound reports a direct lookup miss with a 404 status.
func NewNotFound(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		Title:      "Error",
		err:        errors.New(message),
		kind:       ErrNotFound,
	}
}

// NewLookupFailure reports a direct lookup miss folded into a 400 response.
func NewLookupFailure(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New(message),
		kind:       ErrNotFound,
	}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrBusinessRule)
}

func IsReferenceNotFound(err error) bool {
	return errors.Is(err, ErrReferenceNotFound)
}

func IsDuplicateIdentifier(err error) bool {
	return errors.Is(err, ErrDuplicateIdentifier)
}
