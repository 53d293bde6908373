package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("abc"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"duplicate", DuplicateKey("Key (slug)=(mug) already exists."), "DUPLICATE_KEY", http.StatusBadRequest, ErrDuplicateKey},
		{"invalid", InvalidInput("bad"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"file", FileNotFound(), "FILE_NOT_FOUND", http.StatusBadRequest, ErrFileNotFound},
		{"internal", Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, tt.err, tt.sentinel)
			}
		})
	}
}

func TestNotFound_MessageIncludesTerm(t *testing.T) {
	assert.Equal(t, "Product with id blue-mug not found", NotFound("blue-mug").Message)
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("find one: %w", NotFound("x"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("x: %w", ErrDuplicateKey)))
}

func TestPublic_HidesInternalDetail(t *testing.T) {
	cause := errors.New(`pq: relation "products" does not exist`)

	code, msg := Public(Internal(cause))
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, InternalMessage, msg)
	assert.NotContains(t, msg, "relation")

	code, msg = Public(cause)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, InternalMessage, msg)

	code, msg = Public(DuplicateKey("Key (title)=(Mug) already exists."))
	assert.Equal(t, "DUPLICATE_KEY", code)
	assert.Equal(t, "Key (title)=(Mug) already exists.", msg)
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
