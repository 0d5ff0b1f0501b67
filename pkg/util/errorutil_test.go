package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		code       string
		httpStatus int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"business rule", NewBusinessRule("not allowed"), "BUSINESS_RULE_VIOLATION", http.StatusUnprocessableEntity},
		{"not found", NewNotFound("task", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("no role"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.httpStatus, domainErr.HTTPStatus)
			assert.True(t, IsCode(tc.err, tc.code))
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("sprint", nil)
	assert.Equal(t, "sprint not found", err.Error())
}

func TestToDomainError(t *testing.T) {
	t.Run("passes through domain errors", func(t *testing.T) {
		original := NewBusinessRule("nope")
		mapped := ToDomainError(original)
		assert.Equal(t, "BUSINESS_RULE_VIOLATION", mapped.Code)
	})

	t.Run("maps pgx.ErrNoRows to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", mapped.Code)
		assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		mapped := ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
		assert.ErrorContains(t, mapped, "boom")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x", nil)))
	assert.False(t, IsValidation(NewBusinessRule("x")))
	assert.True(t, IsBusinessRule(NewBusinessRule("x")))
	assert.False(t, IsBusinessRule(errors.New("plain")))
}
