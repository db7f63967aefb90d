package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewConflict("DUPLICATE_EMAIL", "email already registered")

	mapped := ToDomainError(err)
	assert.Equal(t, "DUPLICATE_EMAIL", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUnclassified(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.Equal(t, "internal server error", mapped.Message)
}

func TestTaxonomyStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusUnprocessableEntity},
		{"not found", NewNotFound("user"), "NOT_FOUND", http.StatusNotFound},
		{"invalid credentials", NewInvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), "FORBIDDEN", http.StatusUnauthorized},
		{"crypto", NewCryptoError(errors.New("x")), "CRYPTO_FAILURE", http.StatusInternalServerError},
		{"token issuance", NewTokenIssuanceError(errors.New("x")), "TOKEN_ISSUANCE_FAILED", http.StatusInternalServerError},
		{"persistence", NewPersistenceError(errors.New("x")), "PERSISTENCE_FAILURE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewPersistenceError(cause)
	assert.ErrorIs(t, err, cause)
}
