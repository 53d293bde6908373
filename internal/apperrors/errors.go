package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors wrapped by every AppError of the matching kind.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrFileNotFound = errors.New("file not found")
	ErrInternal     = errors.New("internal error")
)

// InternalMessage is the only text an InternalError ever shows a client.
const InternalMessage = "an internal error occurred, check server logs"

// AppError is an error that knows how it should be rendered over HTTP.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error naming the term that matched nothing.
func NotFound(term string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("Product with id %s not found", term),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// DuplicateKey creates a 400 error carrying the store's conflict detail.
func DuplicateKey(detail string) *AppError {
	return &AppError{
		Code:    "DUPLICATE_KEY",
		Message: detail,
		Status:  http.StatusBadRequest,
		Err:     ErrDuplicateKey,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// FileNotFound creates the 400 error returned when no upload survived filtering.
func FileNotFound() *AppError {
	return &AppError{
		Code:    "FILE_NOT_FOUND",
		Message: "File not found",
		Status:  http.StatusBadRequest,
		Err:     ErrFileNotFound,
	}
}

// Internal creates a 500 error. The cause is kept for logs only.
func Internal(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: InternalMessage,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFileNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the code and message safe to show a client for err.
func Public(err error) (code, message string) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
		return appErr.Code, appErr.Message
	}
	return "INTERNAL_ERROR", InternalMessage
}
