package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/upb/blog-api/repositories"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeNotFound, "resource not found", baseErr)

	assert.Equal(t, ErrorTypeNotFound, domainErr.Type)
	assert.Equal(t, "resource not found", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name:    "error with wrapped error",
			err:     &DomainError{Type: ErrorTypeNotFound, Message: "user not found", Err: errors.New("db error")},
			wantMsg: "not_found: user not found (db error)",
		},
		{
			name:    "error without wrapped error",
			err:     &DomainError{Type: ErrorTypeValidation, Message: "invalid input"},
			wantMsg: "validation: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	assert.True(t, errors.Is(NewDomainError(ErrorTypeNotFound, "x", nil), ErrArticleNotFound))
	assert.False(t, errors.Is(NewDomainError(ErrorTypeValidation, "x", nil), ErrArticleNotFound))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", ErrDuplicateUser), ErrCategoryInUse))
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorTypeValidation, "bad", nil).WithDetail("field", "name")
	assert.Equal(t, map[string]interface{}{"field": "name"}, GetErrorDetails(err))
	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}

func TestErrorTypeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", ErrCategoryNotFound, IsNotFoundError},
		{"validation", ErrInvalidInput, IsValidationError},
		{"unauthorized", ErrInvalidCredentials, IsUnauthorizedError},
		{"forbidden", ErrForbidden, IsForbiddenError},
		{"conflict", ErrDuplicateUser, IsConflictError},
		{"internal", ErrInternal, IsInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("context: %w", tt.err)))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}

func TestFromRepository(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want ErrorType
	}{
		{"not found", fmt.Errorf("get: %w", repositories.ErrNotFound), ErrorTypeNotFound},
		{"duplicate", repositories.ErrDuplicate, ErrorTypeConflict},
		{"missing reference", repositories.ErrReferenceMissing, ErrorTypeValidation},
		{"still referenced", repositories.ErrReferenced, ErrorTypeConflict},
		{"anything else", errors.New("connection reset"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRepository(tt.in, "thing not found")
			assert.Equal(t, tt.want, GetErrorType(got))
			assert.ErrorIs(t, got, tt.in)
		})
	}

	assert.NoError(t, FromRepository(nil, "x"))
}
