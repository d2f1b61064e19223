package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorsMatchTheirKind(t *testing.T) {
	tests := []struct {
		name   string
		err    *ApiErr
		kind   error
		status int
		text   string
	}{
		{"validation", NewValidationError("name: too short\n"), ErrValidation, 400, "name: too short\n"},
		{"business rule", NewBusinessRuleError("start_date", "The start date cannot be before today."), ErrBusinessRule, 400, "The start date cannot be before today."},
		{"reference", NewReferenceNotFoundError("project", 3), ErrReferenceNotFound, 400, "No project exists with the ID: 3"},
		{"duplicate", NewDuplicateIdentifierError("technology", 5), ErrDuplicateIdentifier, 400, "The technology ID 5 is already in use"},
		{"not found", NewNotFound("There isn't any project with the ID: 1"), ErrNotFound, 404, "There isn't any project with the ID: 1"},
		{"lookup", NewLookupFailure("No project found with ID: 1"), ErrNotFound, 400, "No project found with ID: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.kind))
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.text, tt.err.Error())
		})
	}
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Validation Error", NewValidationError("x").Headline())
	assert.Equal(t, "Error", NewNotFound("x").Headline())
	assert.Equal(t, "Bad Request", NewReferenceNotFoundError("developer", 1).Headline())
	assert.Equal(t, "Internal Server Error", NewInternalError("boom").Headline())
}

func TestNewDatabaseError_Classifies(t *testing.T) {
	dup := NewDatabaseError("create", "technology", errors.New("UNIQUE constraint failed: technologies.tech_id"))
	assert.True(t, IsDuplicateIdentifier(dup))
	assert.Equal(t, http.StatusBadRequest, dup.StatusCode)

	fk := NewDatabaseError("create", "project", errors.New(`violates foreign key constraint "fk_status"`))
	assert.True(t, IsReferenceNotFound(fk))

	conn := NewDatabaseError("find", "project", errors.New("connection refused"))
	assert.True(t, IsInternal(conn))
	assert.True(t, errors.Is(conn, ErrDatabaseConnection))

	other := NewDatabaseError("find", "project", errors.New("syntax error"))
	assert.True(t, IsInternal(other))
	assert.Equal(t, http.StatusInternalServerError, other.StatusCode)
	assert.Contains(t, other.GetFullError(), "syntax error")
}

func TestRequestErrors(t *testing.T) {
	err := NewMalformedPayloadError("project", errors.New("unexpected EOF"))
	assert.True(t, IsMalformedPayloadError(err))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	param := NewInvalidParameterError("id", "abc")
	assert.Equal(t, `invalid parameter: id must be an integer, got "abc"`, param.Error())
}
